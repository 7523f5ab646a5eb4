package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/internal/model"
	"github.com/streamdraw/backend/internal/repository"
	"github.com/streamdraw/backend/pkg/crypto"
	"github.com/streamdraw/backend/pkg/errorx"
	"github.com/streamdraw/backend/pkg/randomorg"
	"github.com/streamdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	oracleSource         = "random.org"
	defaultOracleTimeout = 30 * time.Second
)

// EntrySource abstracts where a draw reads its eligible entries from. The
// ledger source covers both single-platform and aggregated multi-platform
// giveaways, so the draw algorithm exists exactly once.
type EntrySource interface {
	Entries(ctx context.Context, giveaway *entity.Giveaway) ([]entity.Entry, error)
}

type ledgerEntrySource struct {
	entryRepo repository.EntryRepository
}

func NewLedgerEntrySource(entryRepo repository.EntryRepository) *ledgerEntrySource {
	return &ledgerEntrySource{entryRepo: entryRepo}
}

func (s *ledgerEntrySource) Entries(
	ctx context.Context, giveaway *entity.Giveaway,
) ([]entity.Entry, error) {
	if len(giveaway.Platforms) == 0 {
		return s.entryRepo.GetByGiveawayID(ctx, giveaway.ID)
	}

	return s.entryRepo.GetByGiveawayIDAndPlatforms(ctx, giveaway.ID, giveaway.Platforms)
}

type DrawDomain interface {
	Draw(context.Context, *model.DrawRequest) (*model.DrawResponse, error)
	GetHistory(context.Context, *model.GetDrawHistoryRequest) (*model.GetDrawHistoryResponse, error)
}

type drawDomain struct {
	giveawayRepo repository.GiveawayRepository
	winnerRepo   repository.WinnerRepository
	entrySource  EntrySource
	oracle       randomorg.Client

	// drawLocks serializes draws per giveaway. Draws of different giveaways
	// proceed in parallel.
	drawLocks *xsync.MapOf[string, *sync.Mutex]
}

func NewDrawDomain(
	giveawayRepo repository.GiveawayRepository,
	winnerRepo repository.WinnerRepository,
	entrySource EntrySource,
	oracle randomorg.Client,
) *drawDomain {
	return &drawDomain{
		giveawayRepo: giveawayRepo,
		winnerRepo:   winnerRepo,
		entrySource:  entrySource,
		oracle:       oracle,
		drawLocks:    xsync.NewMapOf[*sync.Mutex](),
	}
}

// Draw performs one full draw transition for the giveaway: the previous
// winner (if any) becomes a repick, the eligible ticket ranges are committed
// to by hash, the oracle supplies a signed random number, and the resolved
// winner is persisted. The repick transition and the new winner record are
// one transaction; an oracle failure leaves the giveaway untouched.
func (d *drawDomain) Draw(
	ctx context.Context, req *model.DrawRequest,
) (*model.DrawResponse, error) {
	if d.oracle == nil {
		return nil, errorx.New(errorx.Unavailable, "No randomness oracle configured")
	}

	giveaway, err := d.giveawayRepo.GetByID(ctx, req.GiveawayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found giveaway")
		}

		xcontext.Logger(ctx).Errorf("Cannot get giveaway: %v", err)
		return nil, errorx.Unknown
	}

	lock, _ := d.drawLocks.LoadOrStore(giveaway.ID, &sync.Mutex{})
	lock.Lock()
	defer lock.Unlock()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	history, err := d.winnerRepo.GetByGiveawayID(ctx, giveaway.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get winner history: %v", err)
		return nil, errorx.Unknown
	}

	repickNumber := len(history)
	if repickNumber > 0 {
		if err := d.repickCurrentWinner(ctx, giveaway.ID); err != nil {
			return nil, err
		}
	}

	// Previous winners are excluded from every later draw of the giveaway,
	// cumulatively.
	excluded := map[int64]bool{}
	for _, record := range history {
		excluded[record.WinnerEntryID] = true
	}

	entries, err := d.entrySource.Entries(ctx, giveaway)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get entries: %v", err)
		return nil, errorx.Unknown
	}

	eligible := entries[:0]
	for _, entry := range entries {
		if !excluded[entry.ID] {
			eligible = append(eligible, entry)
		}
	}

	if len(eligible) < 2 {
		return nil, errorx.New(errorx.NotEnoughEntries,
			"Require at least two eligible entries, got %d", len(eligible))
	}

	ranges, totalTickets := buildTicketRanges(ctx, eligible)
	if totalTickets <= 0 {
		return nil, errorx.New(errorx.NotEnoughEntries, "No tickets among eligible entries")
	}

	hashAlgo, listHash := d.commitToRanges(ctx, ranges)

	annotation := giveaway.Name
	if repickNumber > 0 {
		annotation = fmt.Sprintf("%s (repick %d)", giveaway.Name, repickNumber)
	}

	timeout := xcontext.Configs(ctx).RandomOrg.Timeout
	if timeout <= 0 {
		timeout = defaultOracleTimeout
	}

	oracleCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Ticket indices start at 0, so the inclusive oracle bounds are
	// [0, totalTickets-1].
	signed, err := d.oracle.GenerateSignedIntegers(
		oracleCtx, 1, 0, totalTickets-1, true, annotation)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get a signed random number: %v", err)
		return nil, errorx.New(errorx.OracleFailure, "Randomness oracle is unavailable")
	}

	verified, err := d.oracle.VerifySignature(oracleCtx, signed.Random, signed.Signature)
	if err != nil {
		// Verification failure is an auditing concern, not a reason to
		// abort a draw that otherwise completed fairly.
		xcontext.Logger(ctx).Warnf("Cannot verify the oracle signature: %v", err)
		verified = false
	}

	drawnNumber := signed.Parsed.Data[0]
	winnerIndex, ok := resolveDrawnNumber(ranges, drawnNumber)
	if !ok {
		xcontext.Logger(ctx).Errorf(
			"Drawn number %d resolves to no range of giveaway %s (total %d)",
			drawnNumber, giveaway.ID, totalTickets)
		return nil, errorx.New(errorx.Internal, "Drawn number resolves to no entry")
	}

	winnerRange := ranges[winnerIndex]
	record := &entity.WinnerRecord{
		Base:              entity.Base{ID: uuid.NewString()},
		GiveawayID:        giveaway.ID,
		WinnerEntryID:     winnerRange.EntryID,
		Status:            entity.Winner,
		ParticipantRanges: ranges,
		TotalTickets:      totalTickets,
		ListHashAlgo:      hashAlgo,
		ListHash:          listHash,
		OracleRandom:      signed.Random,
		OracleSignature:   signed.Signature,
		OracleVerifyURL:   randomorg.VerificationURL(signed.Random, signed.Signature),
		DrawnNumber:       drawnNumber,
		Verified:          verified,
	}

	if err := d.winnerRepo.Create(ctx, record); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create winner record: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.DrawResponse{
		GiveawayID:      giveaway.ID,
		RepickNumber:    repickNumber,
		TotalTickets:    totalTickets,
		ListHashAlgo:    hashAlgo,
		ListHash:        listHash,
		OracleSource:    oracleSource,
		OracleRandom:    signed.Random,
		OracleSignature: signed.Signature,
		OracleVerifyURL: record.OracleVerifyURL,
		Verified:        verified,
		Winner: model.DrawWinner{
			EntryID:     winnerRange.EntryID,
			Display:     winnerRange.Display,
			Start:       winnerRange.Start,
			End:         winnerRange.End,
			DrawnNumber: drawnNumber,
		},
		DrawnAt: time.Now(),
	}, nil
}

func (d *drawDomain) GetHistory(
	ctx context.Context, req *model.GetDrawHistoryRequest,
) (*model.GetDrawHistoryResponse, error) {
	records, err := d.winnerRepo.GetByGiveawayID(ctx, req.GiveawayID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get winner history: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetDrawHistoryResponse{Records: []model.WinnerRecord{}}
	for i := range records {
		resp.Records = append(resp.Records, model.ConvertWinnerRecord(&records[i]))
	}

	return resp, nil
}

// repickCurrentWinner moves the single current winner to repick. Zero or
// multiple current winners mean the state machine was corrupted outside the
// draw path; that is a defect, not a transient condition.
func (d *drawDomain) repickCurrentWinner(ctx context.Context, giveawayID string) error {
	current, err := d.winnerRepo.GetCurrentWinners(ctx, giveawayID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the current winner: %v", err)
		return errorx.Unknown
	}

	if len(current) != 1 {
		xcontext.Logger(ctx).Errorf(
			"Expected exactly one current winner of giveaway %s, found %d",
			giveawayID, len(current))
		return errorx.New(errorx.Internal, "Winner history is corrupted")
	}

	if err := d.winnerRepo.TransitionToRepick(ctx, current[0].ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot transition the winner to repick: %v", err)
		return errorx.Unknown
	}

	return nil
}

// buildTicketRanges assigns each entry the half-open block
// [start, start+tickets) in canonical ledger order. Ranges are contiguous and
// gapless by construction, so the final start equals the ticket total.
func buildTicketRanges(
	ctx context.Context, entries []entity.Entry,
) (entity.Array[entity.ParticipantRange], int) {
	ranges := entity.Array[entity.ParticipantRange]{}
	start := 0
	for i := range entries {
		entry := &entries[i]
		if entry.Tickets <= 0 {
			xcontext.Logger(ctx).Warnf("Skipped non-positive entry %d in range build", entry.ID)
			continue
		}

		ranges = append(ranges, entity.ParticipantRange{
			EntryID: entry.ID,
			Display: entry.Display(),
			Start:   start,
			End:     start + entry.Tickets,
		})
		start += entry.Tickets
	}

	return ranges, start
}

// commitToRanges hashes the canonical text form of the partition, one line
// per range as "id;display;start;end". Publishing the digest alongside the
// draw proves the entry list was not altered after the fact.
func (d *drawDomain) commitToRanges(
	ctx context.Context, ranges []entity.ParticipantRange,
) (string, string) {
	lines := make([]string, 0, len(ranges))
	for _, r := range ranges {
		lines = append(lines, fmt.Sprintf("%d;%s;%d;%d", r.EntryID, r.Display, r.Start, r.End))
	}

	text := []byte(strings.Join(lines, "\n"))
	if xcontext.Configs(ctx).Draw.ListHashAlgo == "sha1" {
		return "sha1", crypto.SHA1Hex(text)
	}

	return "sha256", crypto.SHA256Hex(text)
}

// resolveDrawnNumber finds the range containing drawn by binary search over
// the sorted, non-overlapping partition. A miss means the partition was
// built wrong; callers must treat it as fatal.
func resolveDrawnNumber(ranges []entity.ParticipantRange, drawn int) (int, bool) {
	lo, hi := 0, len(ranges)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case drawn < ranges[mid].Start:
			hi = mid - 1
		case drawn >= ranges[mid].End:
			lo = mid + 1
		default:
			return mid, true
		}
	}

	return 0, false
}
