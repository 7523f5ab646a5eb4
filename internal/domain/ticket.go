package domain

import (
	"context"
	"errors"
	"sort"

	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/internal/model"
	"github.com/streamdraw/backend/internal/repository"
	"github.com/streamdraw/backend/pkg/enum"
	"github.com/streamdraw/backend/pkg/errorx"
	"github.com/streamdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type TicketDomain interface {
	Evaluate(context.Context, *model.EvaluateTicketsRequest) (*model.EvaluateTicketsResponse, error)
}

type ticketDomain struct {
	giveawayRepo repository.GiveawayRepository
	ruleRepo     repository.RuleRepository
}

func NewTicketDomain(
	giveawayRepo repository.GiveawayRepository,
	ruleRepo repository.RuleRepository,
) *ticketDomain {
	return &ticketDomain{
		giveawayRepo: giveawayRepo,
		ruleRepo:     ruleRepo,
	}
}

// Evaluate applies the operator's ticket rules to an already-resolved viewer
// state. A missing rule never fails the evaluation, it just contributes zero
// tickets; the caller decides whether that is worth a configuration warning.
func (d *ticketDomain) Evaluate(
	ctx context.Context, req *model.EvaluateTicketsRequest,
) (*model.EvaluateTicketsResponse, error) {
	giveaway, err := d.giveawayRepo.GetByID(ctx, req.GiveawayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found giveaway")
		}

		xcontext.Logger(ctx).Errorf("Cannot get giveaway: %v", err)
		return nil, errorx.Unknown
	}

	platform, err := enum.ToEnum[entity.Platform](req.Platform)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid platform: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid platform %s", req.Platform)
	}

	resp := &model.EvaluateTicketsResponse{}
	if !giveaway.HasPlatform(platform) {
		xcontext.Logger(ctx).Debugf(
			"Giveaway %s does not accept platform %s", giveaway.ID, platform)
		return resp, nil
	}

	if req.Role != "" && giveaway.AllowsRole(req.Role) {
		resp.BaseMethod, resp.BaseTickets = d.evaluateRole(ctx, giveaway, platform, req.Role)
	}

	// Iterate donation kinds in a fixed order so the breakdown is
	// deterministic for identical inputs.
	unitTypes := make([]string, 0, len(req.DonationTotals))
	for unitType := range req.DonationTotals {
		unitTypes = append(unitTypes, unitType)
	}
	sort.Strings(unitTypes)

	for _, unitType := range unitTypes {
		quantity := req.DonationTotals[unitType]
		if quantity <= 0 {
			continue
		}

		donation, ok := d.evaluateDonation(ctx, giveaway, platform, unitType, quantity)
		if !ok {
			continue
		}

		resp.Donations = append(resp.Donations, donation)
		resp.TotalTickets += donation.Tickets
	}

	resp.TotalTickets += resp.BaseTickets
	return resp, nil
}

func (d *ticketDomain) evaluateRole(
	ctx context.Context, giveaway *entity.Giveaway, platform entity.Platform, role string,
) (string, int) {
	method, err := entity.RoleEntryMethod(platform, role)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Unknown role %s on %s: %v", role, platform, err)
		return "", 0
	}

	rule, err := d.ruleRepo.GetRoleRule(ctx, giveaway.UserID, platform, role)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get role rule: %v", err)
		}

		return string(method), 0
	}

	return string(method), rule.TicketsPerUnit
}

func (d *ticketDomain) evaluateDonation(
	ctx context.Context, giveaway *entity.Giveaway, platform entity.Platform, unitType string, quantity int,
) (model.DonationTickets, bool) {
	unit, err := enum.ToEnum[entity.DonationUnitType](unitType)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Unknown donation unit %s: %v", unitType, err)
		return model.DonationTickets{}, false
	}

	method, err := entity.DonationEntryMethod(platform, unit)
	if err != nil {
		xcontext.Logger(ctx).Debugf("No entry method for %s on %s: %v", unit, platform, err)
		return model.DonationTickets{}, false
	}

	rule, err := d.ruleRepo.GetDonationRule(ctx, giveaway.UserID, platform, unit)
	if err != nil {
		// An unconfigured donation kind contributes zero tickets and must
		// not error.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get donation rule: %v", err)
		}

		return model.DonationTickets{}, false
	}

	return model.DonationTickets{
		Method:      string(method),
		MethodLabel: method.Label(),
		UnitType:    string(unit),
		Quantity:    quantity,
		Tickets:     rule.Tickets(quantity),
	}, true
}
