package domain

import (
	"testing"

	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/internal/model"
	"github.com/streamdraw/backend/internal/repository"
	"github.com/streamdraw/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestGiveawayDomain() *giveawayDomain {
	return NewGiveawayDomain(
		repository.NewGiveawayRepository(),
		repository.NewEntryRepository(),
		repository.NewWinnerRepository(),
	)
}

func Test_giveawayDomain_CreateAndGet(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertUsers(ctx)
	d := newTestGiveawayDomain()

	created, err := d.Create(ctx, &model.CreateGiveawayRequest{
		Name:           "Sub Special",
		Platforms:      []string{"twitch", "youtube"},
		AllowedRoles:   []string{"tier_1"},
		DonationWindow: "monthly",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := d.Get(ctx, &model.GetGiveawayRequest{GiveawayID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "Sub Special", got.Giveaway.Name)
	require.Equal(t, testutil.User1.ID, got.Giveaway.UserID)
	require.Equal(t, []string{"twitch", "youtube"}, got.Giveaway.Platforms)
	require.Equal(t, "monthly", got.Giveaway.DonationWindow)
	require.NotEmpty(t, got.Giveaway.WindowKey)

	// Omitted window falls back to total, whose window key is empty.
	created, err = d.Create(ctx, &model.CreateGiveawayRequest{Name: "Open Giveaway"})
	require.NoError(t, err)

	got, err = d.Get(ctx, &model.GetGiveawayRequest{GiveawayID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "total", got.Giveaway.DonationWindow)
	require.Empty(t, got.Giveaway.WindowKey)

	_, err = d.Create(ctx, &model.CreateGiveawayRequest{Name: ""})
	require.Error(t, err)
	require.Equal(t, "Require a giveaway name", err.Error())

	_, err = d.Create(ctx, &model.CreateGiveawayRequest{
		Name:      "Bad Platform",
		Platforms: []string{"mixer"},
	})
	require.Error(t, err)
	require.Equal(t, "Invalid platform mixer", err.Error())

	_, err = d.Create(ctx, &model.CreateGiveawayRequest{
		Name:           "Bad Window",
		DonationWindow: "fortnightly",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid donation window fortnightly", err.Error())

	_, err = d.Get(ctx, &model.GetGiveawayRequest{GiveawayID: "not-a-giveaway"})
	require.Error(t, err)
	require.Equal(t, "Not found giveaway", err.Error())
}

func Test_giveawayDomain_Reset(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	insertDrawEntry(t, ctx, 1, testutil.Giveaway1.ID, "alice",
		entity.PlatformTwitch, entity.MethodTwitchTier1, 10)
	insertDrawEntry(t, ctx, 2, testutil.Giveaway1.ID, "bob",
		entity.PlatformTwitch, entity.MethodTwitchTier1, 5)
	insertDrawEntry(t, ctx, 3, testutil.Giveaway2.ID, "erin",
		entity.PlatformKick, entity.MethodKickSub, 2)

	drawer := newTestDrawDomain(&testutil.MockOracle{})
	_, err := drawer.Draw(ctx, &model.DrawRequest{GiveawayID: testutil.Giveaway1.ID})
	require.NoError(t, err)

	d := newTestGiveawayDomain()
	_, err = d.Reset(ctx, &model.ResetGiveawayRequest{GiveawayID: testutil.Giveaway1.ID})
	require.NoError(t, err)

	entries, err := repository.NewEntryRepository().GetByGiveawayID(ctx, testutil.Giveaway1.ID)
	require.NoError(t, err)
	require.Empty(t, entries)

	records, err := repository.NewWinnerRepository().GetByGiveawayID(ctx, testutil.Giveaway1.ID)
	require.NoError(t, err)
	require.Empty(t, records)

	// Other giveaways keep their ledgers, and the reset giveaway itself
	// survives for a re-sync.
	entries, err = repository.NewEntryRepository().GetByGiveawayID(ctx, testutil.Giveaway2.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = d.Get(ctx, &model.GetGiveawayRequest{GiveawayID: testutil.Giveaway1.ID})
	require.NoError(t, err)

	_, err = d.Reset(ctx, &model.ResetGiveawayRequest{GiveawayID: "not-a-giveaway"})
	require.Error(t, err)
	require.Equal(t, "Not found giveaway", err.Error())
}
