package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/internal/model"
	"github.com/streamdraw/backend/internal/repository"
	"github.com/streamdraw/backend/pkg/dateutil"
	"github.com/streamdraw/backend/pkg/enum"
	"github.com/streamdraw/backend/pkg/errorx"
	"github.com/streamdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GiveawayDomain interface {
	Create(context.Context, *model.CreateGiveawayRequest) (*model.CreateGiveawayResponse, error)
	Get(context.Context, *model.GetGiveawayRequest) (*model.GetGiveawayResponse, error)
	Reset(context.Context, *model.ResetGiveawayRequest) (*model.ResetGiveawayResponse, error)
}

type giveawayDomain struct {
	giveawayRepo repository.GiveawayRepository
	entryRepo    repository.EntryRepository
	winnerRepo   repository.WinnerRepository
}

func NewGiveawayDomain(
	giveawayRepo repository.GiveawayRepository,
	entryRepo repository.EntryRepository,
	winnerRepo repository.WinnerRepository,
) *giveawayDomain {
	return &giveawayDomain{
		giveawayRepo: giveawayRepo,
		entryRepo:    entryRepo,
		winnerRepo:   winnerRepo,
	}
}

func (d *giveawayDomain) Create(
	ctx context.Context, req *model.CreateGiveawayRequest,
) (*model.CreateGiveawayResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a giveaway name")
	}

	window := entity.WindowTotal
	if req.DonationWindow != "" {
		var err error
		window, err = enum.ToEnum[entity.DonationWindow](req.DonationWindow)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest,
				"Invalid donation window %s", req.DonationWindow)
		}
	}

	platforms := entity.Array[entity.Platform]{}
	for _, p := range req.Platforms {
		platform, err := enum.ToEnum[entity.Platform](p)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid platform %s", p)
		}

		platforms = append(platforms, platform)
	}

	giveaway := &entity.Giveaway{
		Base:           entity.Base{ID: uuid.NewString()},
		UserID:         xcontext.RequestUserID(ctx),
		Name:           req.Name,
		Platforms:      platforms,
		AllowedRoles:   req.AllowedRoles,
		DonationWindow: window,
	}

	if err := d.giveawayRepo.Create(ctx, giveaway); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create giveaway: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateGiveawayResponse{ID: giveaway.ID}, nil
}

func (d *giveawayDomain) Get(
	ctx context.Context, req *model.GetGiveawayRequest,
) (*model.GetGiveawayResponse, error) {
	giveaway, err := d.giveawayRepo.GetByID(ctx, req.GiveawayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found giveaway")
		}

		xcontext.Logger(ctx).Errorf("Cannot get giveaway: %v", err)
		return nil, errorx.Unknown
	}

	windowKey, err := dateutil.WindowKey(giveaway.DonationWindow, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot determine donation window: %v", err)
	}

	return &model.GetGiveawayResponse{
		Giveaway: model.ConvertGiveaway(giveaway, windowKey),
	}, nil
}

// Reset wipes the full ledger of a giveaway before a collaborator re-syncs
// it. The winner history goes with it, its entry references would dangle
// otherwise.
func (d *giveawayDomain) Reset(
	ctx context.Context, req *model.ResetGiveawayRequest,
) (*model.ResetGiveawayResponse, error) {
	giveaway, err := d.giveawayRepo.GetByID(ctx, req.GiveawayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found giveaway")
		}

		xcontext.Logger(ctx).Errorf("Cannot get giveaway: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.winnerRepo.DeleteByGiveawayID(ctx, giveaway.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete winner records: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.entryRepo.DeleteByGiveawayID(ctx, giveaway.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete entries: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ResetGiveawayResponse{DeletedAt: time.Now()}, nil
}
