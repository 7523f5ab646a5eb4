package domain

import (
	"context"
	"errors"
	"time"

	"github.com/fatih/structs"
	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/internal/model"
	"github.com/streamdraw/backend/internal/repository"
	"github.com/streamdraw/backend/pkg/dateutil"
	"github.com/streamdraw/backend/pkg/enum"
	"github.com/streamdraw/backend/pkg/errorx"
	"github.com/streamdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type EntryDomain interface {
	Add(context.Context, *model.AddEntryRequest) (*model.AddEntryResponse, error)
	RecordParticipant(context.Context, *model.RecordParticipantRequest) (*model.RecordParticipantResponse, error)
	List(context.Context, *model.ListEntriesRequest) (*model.ListEntriesResponse, error)
}

type entryDomain struct {
	giveawayRepo repository.GiveawayRepository
	entryRepo    repository.EntryRepository
	profileRepo  repository.ProfileRepository
	ticketDomain TicketDomain
}

func NewEntryDomain(
	giveawayRepo repository.GiveawayRepository,
	entryRepo repository.EntryRepository,
	profileRepo repository.ProfileRepository,
	ticketDomain TicketDomain,
) *entryDomain {
	return &entryDomain{
		giveawayRepo: giveawayRepo,
		entryRepo:    entryRepo,
		profileRepo:  profileRepo,
		ticketDomain: ticketDomain,
	}
}

type donationMetadata struct {
	UnitType  string `structs:"unit_type"`
	Quantity  int    `structs:"quantity"`
	WindowKey string `structs:"window_key"`
}

// Add records one ticket-granting entry. Concurrent calls sharing a
// (giveaway, platform, user, method) key are resolved by the ledger's unique
// index: exactly one caller inserts, the rest get the existing entry with
// created=false.
func (d *entryDomain) Add(
	ctx context.Context, req *model.AddEntryRequest,
) (*model.AddEntryResponse, error) {
	if req.Tickets <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Tickets must be a positive number")
	}

	platform, err := enum.ToEnum[entity.Platform](req.Platform)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid platform %s", req.Platform)
	}

	method, err := enum.ToEnum[entity.EntryMethod](req.Method)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid entry method %s", req.Method)
	}

	giveaway, err := d.giveawayRepo.GetByID(ctx, req.GiveawayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found giveaway")
		}

		xcontext.Logger(ctx).Errorf("Cannot get giveaway: %v", err)
		return nil, errorx.Unknown
	}

	if !giveaway.HasPlatform(platform) {
		return nil, errorx.New(errorx.BadRequest,
			"Giveaway does not accept platform %s", platform)
	}

	entry := &entity.Entry{
		SnowFlakeBase:  entity.SnowFlakeBase{ID: xcontext.SnowflakeNode(ctx).Generate().Int64()},
		GiveawayID:     giveaway.ID,
		Platform:       platform,
		ExternalUserID: req.ExternalUserID,
		Username:       req.Username,
		AvatarURL:      req.AvatarURL,
		Method:         method,
		Tickets:        req.Tickets,
		Metadata:       entity.Map(req.Metadata),
	}

	created, err := d.entryRepo.Create(ctx, entry)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create entry: %v", err)
		return nil, errorx.Unknown
	}

	if !created {
		existing, err := d.entryRepo.GetByDedupKey(
			ctx, giveaway.ID, platform, req.ExternalUserID, method)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get existing entry: %v", err)
			return nil, errorx.Unknown
		}

		entry = existing
	}

	if entry.AvatarURL == "" {
		go d.enrichAvatar(xcontext.Detach(ctx), entry.ID, platform, req.ExternalUserID)
	}

	return &model.AddEntryResponse{Created: created, Entry: model.ConvertEntry(entry)}, nil
}

// RecordParticipant evaluates the rules for a resolved viewer state and
// records every contribution as its own entry, one per method, preserving
// ticket provenance. Methods yielding zero or negative tickets create no
// entry.
func (d *entryDomain) RecordParticipant(
	ctx context.Context, req *model.RecordParticipantRequest,
) (*model.RecordParticipantResponse, error) {
	evaluation, err := d.ticketDomain.Evaluate(ctx, &model.EvaluateTicketsRequest{
		GiveawayID:     req.GiveawayID,
		Platform:       req.Platform,
		Role:           req.Role,
		DonationTotals: req.DonationTotals,
	})
	if err != nil {
		return nil, err
	}

	giveaway, err := d.giveawayRepo.GetByID(ctx, req.GiveawayID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get giveaway: %v", err)
		return nil, errorx.Unknown
	}

	windowKey, err := dateutil.WindowKey(giveaway.DonationWindow, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot determine donation window: %v", err)
	}

	resp := &model.RecordParticipantResponse{Evaluation: *evaluation}
	if evaluation.BaseTickets > 0 {
		added, err := d.Add(ctx, &model.AddEntryRequest{
			GiveawayID:     req.GiveawayID,
			Platform:       req.Platform,
			ExternalUserID: req.ExternalUserID,
			Username:       req.Username,
			AvatarURL:      req.AvatarURL,
			Method:         evaluation.BaseMethod,
			Tickets:        evaluation.BaseTickets,
		})
		if err != nil {
			return nil, err
		}

		resp.Entries = append(resp.Entries, *added)
	}

	for _, donation := range evaluation.Donations {
		if donation.Tickets <= 0 {
			continue
		}

		added, err := d.Add(ctx, &model.AddEntryRequest{
			GiveawayID:     req.GiveawayID,
			Platform:       req.Platform,
			ExternalUserID: req.ExternalUserID,
			Username:       req.Username,
			AvatarURL:      req.AvatarURL,
			Method:         donation.Method,
			Tickets:        donation.Tickets,
			Metadata: structs.Map(donationMetadata{
				UnitType:  donation.UnitType,
				Quantity:  donation.Quantity,
				WindowKey: windowKey,
			}),
		})
		if err != nil {
			return nil, err
		}

		resp.Entries = append(resp.Entries, *added)
	}

	return resp, nil
}

func (d *entryDomain) List(
	ctx context.Context, req *model.ListEntriesRequest,
) (*model.ListEntriesResponse, error) {
	entries, err := d.entryRepo.GetByGiveawayID(ctx, req.GiveawayID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list entries: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.ListEntriesResponse{Entries: []model.Entry{}}
	for i := range entries {
		resp.Entries = append(resp.Entries, model.ConvertEntry(&entries[i]))
		resp.TotalTickets += entries[i].Tickets
	}

	return resp, nil
}

// enrichAvatar backfills the avatar url from the profile cache. It runs
// detached from the entry-creation call: a failure here is logged and
// forgotten, ticket accounting is already done.
func (d *entryDomain) enrichAvatar(
	ctx context.Context, entryID int64, platform entity.Platform, externalUserID string,
) {
	if d.profileRepo == nil {
		return
	}

	avatarURL, err := d.profileRepo.GetAvatarURL(ctx, platform, externalUserID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot resolve avatar of %s on %s: %v",
			externalUserID, platform, err)
		return
	}

	if avatarURL == "" {
		return
	}

	if err := d.entryRepo.UpdateAvatarURL(ctx, entryID, avatarURL); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot backfill avatar of entry %d: %v", entryID, err)
	}
}
