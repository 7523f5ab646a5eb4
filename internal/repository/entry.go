package repository

import (
	"context"

	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type EntryRepository interface {
	// Create persists the entry unless one already exists for its dedup key
	// (giveaway, platform, external user, method). It reports whether the
	// given entry was actually inserted. The check and the insert are a
	// single statement backed by the unique index, so concurrent producers
	// racing on the same key cannot both succeed.
	Create(ctx context.Context, entry *entity.Entry) (bool, error)

	GetByID(ctx context.Context, id int64) (*entity.Entry, error)
	GetByDedupKey(ctx context.Context, giveawayID string, platform entity.Platform, externalUserID string, method entity.EntryMethod) (*entity.Entry, error)

	// GetByGiveawayID returns entries in the canonical ledger order: creation
	// time, tie-broken by id. The order is derived from persisted columns
	// only, so it is reproducible long after the draw.
	GetByGiveawayID(ctx context.Context, giveawayID string) ([]entity.Entry, error)
	GetByGiveawayIDAndPlatforms(ctx context.Context, giveawayID string, platforms []entity.Platform) ([]entity.Entry, error)

	UpdateAvatarURL(ctx context.Context, id int64, avatarURL string) error
	DeleteByGiveawayID(ctx context.Context, giveawayID string) error
}

type entryRepository struct{}

func NewEntryRepository() *entryRepository {
	return &entryRepository{}
}

func (r *entryRepository) Create(ctx context.Context, entry *entity.Entry) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "giveaway_id"},
				{Name: "platform"},
				{Name: "external_user_id"},
				{Name: "method"},
			},
			DoNothing: true,
		}).Create(entry)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *entryRepository) GetByID(ctx context.Context, id int64) (*entity.Entry, error) {
	var result entity.Entry
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *entryRepository) GetByDedupKey(
	ctx context.Context,
	giveawayID string,
	platform entity.Platform,
	externalUserID string,
	method entity.EntryMethod,
) (*entity.Entry, error) {
	var result entity.Entry
	err := xcontext.DB(ctx).Take(&result,
		"giveaway_id=? AND platform=? AND external_user_id=? AND method=?",
		giveawayID, platform, externalUserID, method).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *entryRepository) GetByGiveawayID(ctx context.Context, giveawayID string) ([]entity.Entry, error) {
	var result []entity.Entry
	err := xcontext.DB(ctx).Where("giveaway_id=?", giveawayID).
		Order("created_at ASC, id ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *entryRepository) GetByGiveawayIDAndPlatforms(
	ctx context.Context, giveawayID string, platforms []entity.Platform,
) ([]entity.Entry, error) {
	var result []entity.Entry
	err := xcontext.DB(ctx).
		Where("giveaway_id=? AND platform IN (?)", giveawayID, platforms).
		Order("created_at ASC, id ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *entryRepository) UpdateAvatarURL(ctx context.Context, id int64, avatarURL string) error {
	return xcontext.DB(ctx).Model(&entity.Entry{}).
		Where("id=?", id).Update("avatar_url", avatarURL).Error
}

func (r *entryRepository) DeleteByGiveawayID(ctx context.Context, giveawayID string) error {
	return xcontext.DB(ctx).
		Where("giveaway_id=?", giveawayID).Delete(&entity.Entry{}).Error
}
