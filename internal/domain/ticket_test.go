package domain

import (
	"testing"

	"github.com/streamdraw/backend/internal/model"
	"github.com/streamdraw/backend/internal/repository"
	"github.com/streamdraw/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_ticketDomain_Evaluate(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewTicketDomain(repository.NewGiveawayRepository(), repository.NewRuleRepository())

	// A tier 1 sub with 250 bits. The bits rule is 100 bits per ticket, so
	// 250 floors down to 2 tickets.
	resp, err := d.Evaluate(ctx, &model.EvaluateTicketsRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "twitch",
		Role:           "tier_1",
		DonationTotals: map[string]int{"bits": 250},
	})
	require.NoError(t, err)
	require.Equal(t, "twitch_tier_1", resp.BaseMethod)
	require.Equal(t, 5, resp.BaseTickets)
	require.Len(t, resp.Donations, 1)
	require.Equal(t, "twitch_bits", resp.Donations[0].Method)
	require.Equal(t, "bits", resp.Donations[0].UnitType)
	require.Equal(t, 250, resp.Donations[0].Quantity)
	require.Equal(t, 2, resp.Donations[0].Tickets)
	require.Equal(t, 7, resp.TotalTickets)

	// 99 bits is below one full unit and contributes nothing.
	resp, err = d.Evaluate(ctx, &model.EvaluateTicketsRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "twitch",
		Role:           "tier_3",
		DonationTotals: map[string]int{"bits": 99},
	})
	require.NoError(t, err)
	require.Equal(t, 15, resp.BaseTickets)
	require.Len(t, resp.Donations, 1)
	require.Equal(t, 0, resp.Donations[0].Tickets)
	require.Equal(t, 15, resp.TotalTickets)

	// Multiple donation kinds are evaluated independently and the breakdown
	// comes back in a fixed order.
	resp, err = d.Evaluate(ctx, &model.EvaluateTicketsRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "twitch",
		Role:           "non_sub",
		DonationTotals: map[string]int{"gift_sub": 3, "bits": 100},
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.BaseTickets)
	require.Len(t, resp.Donations, 2)
	require.Equal(t, "bits", resp.Donations[0].UnitType)
	require.Equal(t, 1, resp.Donations[0].Tickets)
	require.Equal(t, "gift_sub", resp.Donations[1].UnitType)
	require.Equal(t, 6, resp.Donations[1].Tickets)
	require.Equal(t, 8, resp.TotalTickets)
}

func Test_ticketDomain_Evaluate_PlatformGate(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewTicketDomain(repository.NewGiveawayRepository(), repository.NewRuleRepository())

	// Giveaway1 only accepts twitch, so a youtube viewer evaluates to zero
	// everywhere without an error.
	resp, err := d.Evaluate(ctx, &model.EvaluateTicketsRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "youtube",
		Role:           "member",
		DonationTotals: map[string]int{"superchat": 500},
	})
	require.NoError(t, err)
	require.Equal(t, 0, resp.BaseTickets)
	require.Empty(t, resp.Donations)
	require.Equal(t, 0, resp.TotalTickets)

	// An unknown platform string is a caller bug, not a zero evaluation.
	_, err = d.Evaluate(ctx, &model.EvaluateTicketsRequest{
		GiveawayID: testutil.Giveaway1.ID,
		Platform:   "mixer",
		Role:       "tier_1",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid platform mixer", err.Error())

	_, err = d.Evaluate(ctx, &model.EvaluateTicketsRequest{
		GiveawayID: "not-a-giveaway",
		Platform:   "twitch",
	})
	require.Error(t, err)
	require.Equal(t, "Not found giveaway", err.Error())
}

func Test_ticketDomain_Evaluate_UnconfiguredRules(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewTicketDomain(repository.NewGiveawayRepository(), repository.NewRuleRepository())

	// tier_2 is in the allow-list but the operator configured no rule for it:
	// the method is still reported so the caller can warn, with zero tickets.
	resp, err := d.Evaluate(ctx, &model.EvaluateTicketsRequest{
		GiveawayID: testutil.Giveaway1.ID,
		Platform:   "twitch",
		Role:       "tier_2",
	})
	require.NoError(t, err)
	require.Equal(t, "twitch_tier_2", resp.BaseMethod)
	require.Equal(t, 0, resp.BaseTickets)
	require.Equal(t, 0, resp.TotalTickets)

	// A role outside the allow-list contributes nothing at all.
	resp, err = d.Evaluate(ctx, &model.EvaluateTicketsRequest{
		GiveawayID: testutil.Giveaway1.ID,
		Platform:   "twitch",
		Role:       "moderator",
	})
	require.NoError(t, err)
	require.Equal(t, "", resp.BaseMethod)
	require.Equal(t, 0, resp.TotalTickets)

	// Unknown donation kinds and kinds without a rule are skipped from the
	// breakdown entirely, never errored.
	resp, err = d.Evaluate(ctx, &model.EvaluateTicketsRequest{
		GiveawayID:     testutil.Giveaway1.ID,
		Platform:       "twitch",
		Role:           "tier_1",
		DonationTotals: map[string]int{"gold": 9999, "coin": 50, "bits": -10},
	})
	require.NoError(t, err)
	require.Equal(t, 5, resp.BaseTickets)
	require.Empty(t, resp.Donations)
	require.Equal(t, 5, resp.TotalTickets)
}
