package testutil

import (
	"context"

	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base: entity.Base{ID: "user1"},
		Name: "streamer1",
	}

	Giveaway1 = entity.Giveaway{
		Base:           entity.Base{ID: "giveaway1"},
		UserID:         User1.ID,
		Name:           "August Mega Giveaway",
		Platforms:      entity.Array[entity.Platform]{entity.PlatformTwitch},
		AllowedRoles:   entity.Array[string]{"tier_1", "tier_2", "tier_3", "non_sub"},
		DonationWindow: entity.WindowWeekly,
	}

	// Giveaway2 aggregates entries across every platform.
	Giveaway2 = entity.Giveaway{
		Base:           entity.Base{ID: "giveaway2"},
		UserID:         User1.ID,
		Name:           "Multi Platform Giveaway",
		DonationWindow: entity.WindowTotal,
	}

	RoleRuleTier1 = entity.RoleRule{
		Base:           entity.Base{ID: "role-rule-tier1"},
		UserID:         User1.ID,
		Platform:       entity.PlatformTwitch,
		Role:           "tier_1",
		TicketsPerUnit: 5,
	}

	RoleRuleTier3 = entity.RoleRule{
		Base:           entity.Base{ID: "role-rule-tier3"},
		UserID:         User1.ID,
		Platform:       entity.PlatformTwitch,
		Role:           "tier_3",
		TicketsPerUnit: 15,
	}

	RoleRuleNonSub = entity.RoleRule{
		Base:           entity.Base{ID: "role-rule-nonsub"},
		UserID:         User1.ID,
		Platform:       entity.PlatformTwitch,
		Role:           "non_sub",
		TicketsPerUnit: 1,
	}

	DonationRuleBits = entity.DonationRule{
		Base:               entity.Base{ID: "donation-rule-bits"},
		UserID:             User1.ID,
		Platform:           entity.PlatformTwitch,
		UnitType:           entity.UnitBits,
		UnitSize:           100,
		TicketsPerUnitSize: 1,
	}

	DonationRuleGiftSub = entity.DonationRule{
		Base:               entity.Base{ID: "donation-rule-giftsub"},
		UserID:             User1.ID,
		Platform:           entity.PlatformTwitch,
		UnitType:           entity.UnitGiftSub,
		UnitSize:           1,
		TicketsPerUnitSize: 2,
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertGiveaways(ctx)
	InsertRules(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	if err := userRepo.Create(ctx, &User1); err != nil {
		panic(err)
	}
}

func InsertGiveaways(ctx context.Context) {
	giveawayRepo := repository.NewGiveawayRepository()
	if err := giveawayRepo.Create(ctx, &Giveaway1); err != nil {
		panic(err)
	}

	if err := giveawayRepo.Create(ctx, &Giveaway2); err != nil {
		panic(err)
	}
}

func InsertRules(ctx context.Context) {
	ruleRepo := repository.NewRuleRepository()

	roleRules := []*entity.RoleRule{&RoleRuleTier1, &RoleRuleTier3, &RoleRuleNonSub}
	for _, rule := range roleRules {
		if err := ruleRepo.UpsertRoleRule(ctx, rule); err != nil {
			panic(err)
		}
	}

	donationRules := []*entity.DonationRule{&DonationRuleBits, &DonationRuleGiftSub}
	for _, rule := range donationRules {
		if err := ruleRepo.UpsertDonationRule(ctx, rule); err != nil {
			panic(err)
		}
	}
}
