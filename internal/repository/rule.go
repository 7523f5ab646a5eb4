package repository

import (
	"context"

	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type RuleRepository interface {
	// RoleRule
	UpsertRoleRule(ctx context.Context, rule *entity.RoleRule) error
	GetRoleRule(ctx context.Context, userID string, platform entity.Platform, role string) (*entity.RoleRule, error)
	GetRoleRulesByUserID(ctx context.Context, userID string) ([]entity.RoleRule, error)

	// DonationRule
	UpsertDonationRule(ctx context.Context, rule *entity.DonationRule) error
	GetDonationRule(ctx context.Context, userID string, platform entity.Platform, unitType entity.DonationUnitType) (*entity.DonationRule, error)
	GetDonationRulesByUserID(ctx context.Context, userID string) ([]entity.DonationRule, error)
}

type ruleRepository struct{}

func NewRuleRepository() *ruleRepository {
	return &ruleRepository{}
}

func (r *ruleRepository) UpsertRoleRule(ctx context.Context, rule *entity.RoleRule) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "platform"},
				{Name: "role"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				"tickets_per_unit": rule.TicketsPerUnit,
			}),
		}).Create(rule).Error
}

func (r *ruleRepository) GetRoleRule(
	ctx context.Context, userID string, platform entity.Platform, role string,
) (*entity.RoleRule, error) {
	var result entity.RoleRule
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND platform=? AND role=?", userID, platform, role).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *ruleRepository) GetRoleRulesByUserID(ctx context.Context, userID string) ([]entity.RoleRule, error) {
	var result []entity.RoleRule
	if err := xcontext.DB(ctx).Find(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ruleRepository) UpsertDonationRule(ctx context.Context, rule *entity.DonationRule) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "platform"},
				{Name: "unit_type"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				"unit_size":             rule.UnitSize,
				"tickets_per_unit_size": rule.TicketsPerUnitSize,
			}),
		}).Create(rule).Error
}

func (r *ruleRepository) GetDonationRule(
	ctx context.Context, userID string, platform entity.Platform, unitType entity.DonationUnitType,
) (*entity.DonationRule, error) {
	var result entity.DonationRule
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND platform=? AND unit_type=?", userID, platform, unitType).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *ruleRepository) GetDonationRulesByUserID(ctx context.Context, userID string) ([]entity.DonationRule, error) {
	var result []entity.DonationRule
	if err := xcontext.DB(ctx).Find(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}
