package domain

import (
	"testing"

	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/internal/model"
	"github.com/streamdraw/backend/internal/repository"
	"github.com/streamdraw/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestEntryDomain(profileRepo repository.ProfileRepository) *entryDomain {
	giveawayRepo := repository.NewGiveawayRepository()
	return NewEntryDomain(
		giveawayRepo,
		repository.NewEntryRepository(),
		profileRepo,
		NewTicketDomain(giveawayRepo, repository.NewRuleRepository()),
	)
}

func Test_entryDomain_Add(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestEntryDomain(nil)

	resp, err := d.Add(ctx, &model.AddEntryRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "twitch",
		ExternalUserID: "viewer1",
		Username:       "alice",
		AvatarURL:      "https://cdn.example.com/alice.png",
		Method:         "twitch_tier_1",
		Tickets:        5,
	})
	require.NoError(t, err)
	require.True(t, resp.Created)
	require.NotZero(t, resp.Entry.ID)
	require.Equal(t, 5, resp.Entry.Tickets)
	require.Equal(t, "Tier 1 Sub", resp.Entry.MethodLabel)

	// The same viewer and method again is a duplicate. The original entry
	// comes back untouched, with its original ticket count.
	dup, err := d.Add(ctx, &model.AddEntryRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "twitch",
		ExternalUserID: "viewer1",
		Username:       "alice",
		AvatarURL:      "https://cdn.example.com/alice.png",
		Method:         "twitch_tier_1",
		Tickets:        100,
	})
	require.NoError(t, err)
	require.False(t, dup.Created)
	require.Equal(t, resp.Entry.ID, dup.Entry.ID)
	require.Equal(t, 5, dup.Entry.Tickets)

	// A different method of the same viewer is its own entry.
	bits, err := d.Add(ctx, &model.AddEntryRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "twitch",
		ExternalUserID: "viewer1",
		Username:       "alice",
		AvatarURL:      "https://cdn.example.com/alice.png",
		Method:         "twitch_bits",
		Tickets:        2,
	})
	require.NoError(t, err)
	require.True(t, bits.Created)
	require.NotEqual(t, resp.Entry.ID, bits.Entry.ID)

	_, err = d.Add(ctx, &model.AddEntryRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "twitch",
		ExternalUserID: "viewer2",
		Username:       "bob",
		Method:         "twitch_tier_1",
		Tickets:        0,
	})
	require.Error(t, err)
	require.Equal(t, "Tickets must be a positive number", err.Error())

	_, err = d.Add(ctx, &model.AddEntryRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "youtube",
		ExternalUserID: "viewer3",
		Username:       "carol",
		Method:         "youtube_member",
		Tickets:        3,
	})
	require.Error(t, err)
	require.Equal(t, "Giveaway does not accept platform youtube", err.Error())
}

func Test_entryDomain_Add_ConcurrentDuplicates(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestEntryDomain(nil)

	// Many producers race on the same dedup key. Exactly one insert wins, the
	// rest observe the winner's entry.
	results := make([]*model.AddEntryResponse, 10)
	var eg errgroup.Group
	for i := 0; i < len(results); i++ {
		i := i
		eg.Go(func() error {
			resp, err := d.Add(ctx, &model.AddEntryRequest{
				GiveawayID:     testutil.Giveaway1.ID,
				Platform:       "twitch",
				ExternalUserID: "racer",
				Username:       "racer",
				AvatarURL:      "https://cdn.example.com/racer.png",
				Method:         "twitch_gift_sub",
				Tickets:        4,
			})
			if err != nil {
				return err
			}

			results[i] = resp
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	created := 0
	for _, resp := range results {
		if resp.Created {
			created++
		}
		require.Equal(t, results[0].Entry.ID, resp.Entry.ID)
	}
	require.Equal(t, 1, created)

	list, err := d.List(ctx, &model.ListEntriesRequest{GiveawayID: testutil.Giveaway1.ID})
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	require.Equal(t, 4, list.TotalTickets)
}

func Test_entryDomain_RecordParticipant(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestEntryDomain(nil)

	resp, err := d.RecordParticipant(ctx, &model.RecordParticipantRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "twitch",
		ExternalUserID: "viewer1",
		Username:       "alice",
		AvatarURL:      "https://cdn.example.com/alice.png",
		Role:           "tier_1",
		DonationTotals: map[string]int{"bits": 250, "gift_sub": 1},
	})
	require.NoError(t, err)
	require.Equal(t, 9, resp.Evaluation.TotalTickets)
	require.Len(t, resp.Entries, 3)

	list, err := d.List(ctx, &model.ListEntriesRequest{GiveawayID: testutil.Giveaway1.ID})
	require.NoError(t, err)
	require.Len(t, list.Entries, 3)
	require.Equal(t, 9, list.TotalTickets)

	// The donation entries keep their provenance.
	bits, err := repository.NewEntryRepository().GetByDedupKey(
		ctx, testutil.Giveaway1.ID, entity.PlatformTwitch, "viewer1", entity.MethodTwitchBits)
	require.NoError(t, err)
	require.Equal(t, 2, bits.Tickets)
	require.Equal(t, "bits", bits.Metadata["unit_type"])

	// Recording the same state twice adds nothing new.
	resp, err = d.RecordParticipant(ctx, &model.RecordParticipantRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "twitch",
		ExternalUserID: "viewer1",
		Username:       "alice",
		AvatarURL:      "https://cdn.example.com/alice.png",
		Role:           "tier_1",
		DonationTotals: map[string]int{"bits": 250, "gift_sub": 1},
	})
	require.NoError(t, err)
	for _, added := range resp.Entries {
		require.False(t, added.Created)
	}

	// A state yielding zero tickets everywhere records no entry at all.
	resp, err = d.RecordParticipant(ctx, &model.RecordParticipantRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "twitch",
		ExternalUserID: "viewer2",
		Username:       "bob",
		Role:           "tier_2",
		DonationTotals: map[string]int{"bits": 50},
	})
	require.NoError(t, err)
	require.Empty(t, resp.Entries)
}

func Test_entryDomain_List_CanonicalOrder(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestEntryDomain(nil)

	for _, viewer := range []string{"v1", "v2", "v3"} {
		_, err := d.Add(ctx, &model.AddEntryRequest{
			GiveawayID:     testutil.Giveaway1.ID,
			Platform:       "twitch",
			ExternalUserID: viewer,
			Username:       viewer,
			AvatarURL:      "https://cdn.example.com/" + viewer + ".png",
			Method:         "twitch_non_sub",
			Tickets:        1,
		})
		require.NoError(t, err)
	}

	list, err := d.List(ctx, &model.ListEntriesRequest{GiveawayID: testutil.Giveaway1.ID})
	require.NoError(t, err)
	require.Len(t, list.Entries, 3)
	for i := 1; i < len(list.Entries); i++ {
		require.Less(t, list.Entries[i-1].ID, list.Entries[i].ID)
	}
}

func Test_entryDomain_enrichAvatar(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	profileRepo := repository.NewProfileRepository(&testutil.MockRedisClient{})
	require.NoError(t, profileRepo.SetAvatarURL(
		ctx, entity.PlatformTwitch, "viewer1", "https://cdn.example.com/cached.png"))

	d := newTestEntryDomain(profileRepo)
	resp, err := d.Add(ctx, &model.AddEntryRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "twitch",
		ExternalUserID: "viewer1",
		Username:       "alice",
		Method:         "twitch_tier_1",
		Tickets:        5,
	})
	require.NoError(t, err)

	d.enrichAvatar(ctx, resp.Entry.ID, entity.PlatformTwitch, "viewer1")

	entry, err := repository.NewEntryRepository().GetByID(ctx, resp.Entry.ID)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/cached.png", entry.AvatarURL)
}
