package repository

import (
	"context"

	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/pkg/xcontext"
)

type GiveawayRepository interface {
	Create(ctx context.Context, giveaway *entity.Giveaway) error
	GetByID(ctx context.Context, id string) (*entity.Giveaway, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Giveaway, error)
}

type giveawayRepository struct{}

func NewGiveawayRepository() *giveawayRepository {
	return &giveawayRepository{}
}

func (r *giveawayRepository) Create(ctx context.Context, giveaway *entity.Giveaway) error {
	return xcontext.DB(ctx).Create(giveaway).Error
}

func (r *giveawayRepository) GetByID(ctx context.Context, id string) (*entity.Giveaway, error) {
	var result entity.Giveaway
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *giveawayRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Giveaway, error) {
	var result []entity.Giveaway
	err := xcontext.DB(ctx).Where("user_id=?", userID).
		Order("created_at ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
