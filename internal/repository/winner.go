package repository

import (
	"context"

	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type WinnerRepository interface {
	Create(ctx context.Context, record *entity.WinnerRecord) error
	GetByID(ctx context.Context, id string) (*entity.WinnerRecord, error)

	// GetByGiveawayID returns all draw records of the giveaway in creation
	// order, oldest first.
	GetByGiveawayID(ctx context.Context, giveawayID string) ([]entity.WinnerRecord, error)

	// GetCurrentWinners returns every record still holding the winner status.
	// A healthy giveaway has zero or one.
	GetCurrentWinners(ctx context.Context, giveawayID string) ([]entity.WinnerRecord, error)

	// TransitionToRepick atomically moves a record from winner to repick. It
	// returns gorm.ErrRecordNotFound if the record is not the current winner.
	TransitionToRepick(ctx context.Context, id string) error

	DeleteByGiveawayID(ctx context.Context, giveawayID string) error
}

type winnerRepository struct{}

func NewWinnerRepository() *winnerRepository {
	return &winnerRepository{}
}

func (r *winnerRepository) Create(ctx context.Context, record *entity.WinnerRecord) error {
	return xcontext.DB(ctx).Create(record).Error
}

func (r *winnerRepository) GetByID(ctx context.Context, id string) (*entity.WinnerRecord, error) {
	var result entity.WinnerRecord
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *winnerRepository) GetByGiveawayID(ctx context.Context, giveawayID string) ([]entity.WinnerRecord, error) {
	var result []entity.WinnerRecord
	err := xcontext.DB(ctx).Where("giveaway_id=?", giveawayID).
		Order("created_at ASC, id ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *winnerRepository) GetCurrentWinners(ctx context.Context, giveawayID string) ([]entity.WinnerRecord, error) {
	var result []entity.WinnerRecord
	err := xcontext.DB(ctx).
		Find(&result, "giveaway_id=? AND status=?", giveawayID, entity.Winner).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *winnerRepository) TransitionToRepick(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Model(&entity.WinnerRecord{}).
		Where("id=? AND status=?", id, entity.Winner).
		Update("status", entity.Repick)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *winnerRepository) DeleteByGiveawayID(ctx context.Context, giveawayID string) error {
	return xcontext.DB(ctx).
		Where("giveaway_id=?", giveawayID).Delete(&entity.WinnerRecord{}).Error
}
