package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/internal/model"
	"github.com/streamdraw/backend/internal/repository"
	"github.com/streamdraw/backend/pkg/enum"
	"github.com/streamdraw/backend/pkg/errorx"
	"github.com/streamdraw/backend/pkg/xcontext"
)

type RuleDomain interface {
	UpsertRoleRule(context.Context, *model.UpsertRoleRuleRequest) (*model.UpsertRoleRuleResponse, error)
	UpsertDonationRule(context.Context, *model.UpsertDonationRuleRequest) (*model.UpsertDonationRuleResponse, error)
	ListRules(context.Context, *model.ListRulesRequest) (*model.ListRulesResponse, error)
}

type ruleDomain struct {
	ruleRepo repository.RuleRepository
}

func NewRuleDomain(ruleRepo repository.RuleRepository) *ruleDomain {
	return &ruleDomain{ruleRepo: ruleRepo}
}

func (d *ruleDomain) UpsertRoleRule(
	ctx context.Context, req *model.UpsertRoleRuleRequest,
) (*model.UpsertRoleRuleResponse, error) {
	platform, err := enum.ToEnum[entity.Platform](req.Platform)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid platform %s", req.Platform)
	}

	// Every role must map to an entry method, otherwise entries created from
	// this rule could never be recorded.
	if _, err := entity.RoleEntryMethod(platform, req.Role); err != nil {
		return nil, errorx.New(errorx.BadRequest,
			"Unknown role %s on platform %s", req.Role, platform)
	}

	if req.TicketsPerUnit <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Tickets per unit must be a positive number")
	}

	err = d.ruleRepo.UpsertRoleRule(ctx, &entity.RoleRule{
		Base:           entity.Base{ID: uuid.NewString()},
		UserID:         xcontext.RequestUserID(ctx),
		Platform:       platform,
		Role:           req.Role,
		TicketsPerUnit: req.TicketsPerUnit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert role rule: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpsertRoleRuleResponse{}, nil
}

func (d *ruleDomain) UpsertDonationRule(
	ctx context.Context, req *model.UpsertDonationRuleRequest,
) (*model.UpsertDonationRuleResponse, error) {
	platform, err := enum.ToEnum[entity.Platform](req.Platform)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid platform %s", req.Platform)
	}

	unitType, err := enum.ToEnum[entity.DonationUnitType](req.UnitType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid donation unit %s", req.UnitType)
	}

	if _, err := entity.DonationEntryMethod(platform, unitType); err != nil {
		return nil, errorx.New(errorx.BadRequest,
			"Platform %s does not support %s donations", platform, unitType)
	}

	if req.UnitSize <= 0 || req.TicketsPerUnitSize <= 0 {
		return nil, errorx.New(errorx.BadRequest,
			"Unit size and tickets per unit size must be positive numbers")
	}

	err = d.ruleRepo.UpsertDonationRule(ctx, &entity.DonationRule{
		Base:               entity.Base{ID: uuid.NewString()},
		UserID:             xcontext.RequestUserID(ctx),
		Platform:           platform,
		UnitType:           unitType,
		UnitSize:           req.UnitSize,
		TicketsPerUnitSize: req.TicketsPerUnitSize,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert donation rule: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpsertDonationRuleResponse{}, nil
}

func (d *ruleDomain) ListRules(
	ctx context.Context, req *model.ListRulesRequest,
) (*model.ListRulesResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	roleRules, err := d.ruleRepo.GetRoleRulesByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list role rules: %v", err)
		return nil, errorx.Unknown
	}

	donationRules, err := d.ruleRepo.GetDonationRulesByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list donation rules: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.ListRulesResponse{
		RoleRules:     []model.RoleRule{},
		DonationRules: []model.DonationRule{},
	}
	for i := range roleRules {
		resp.RoleRules = append(resp.RoleRules, model.ConvertRoleRule(&roleRules[i]))
	}
	for i := range donationRules {
		resp.DonationRules = append(resp.DonationRules, model.ConvertDonationRule(&donationRules[i]))
	}

	return resp, nil
}
