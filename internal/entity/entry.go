package entity

import (
	"fmt"

	"github.com/streamdraw/backend/pkg/enum"
)

// EntryMethod is the reason tickets were granted. The set is closed and every
// method is platform-qualified, so the same viewer can hold one entry per
// method in a giveaway but never two for the same method.
type EntryMethod string

var (
	MethodTwitchTier1   = enum.New(EntryMethod("twitch_tier_1"))
	MethodTwitchTier2   = enum.New(EntryMethod("twitch_tier_2"))
	MethodTwitchTier3   = enum.New(EntryMethod("twitch_tier_3"))
	MethodTwitchNonSub  = enum.New(EntryMethod("twitch_non_sub"))
	MethodTwitchBits    = enum.New(EntryMethod("twitch_bits"))
	MethodTwitchGiftSub = enum.New(EntryMethod("twitch_gift_sub"))

	MethodYouTubeMember     = enum.New(EntryMethod("youtube_member"))
	MethodYouTubeNonSub     = enum.New(EntryMethod("youtube_non_sub"))
	MethodYouTubeSuperchat  = enum.New(EntryMethod("youtube_superchat"))
	MethodYouTubeGiftMember = enum.New(EntryMethod("youtube_gift_member"))

	MethodKickSub     = enum.New(EntryMethod("kick_sub"))
	MethodKickNonSub  = enum.New(EntryMethod("kick_non_sub"))
	MethodKickCoin    = enum.New(EntryMethod("kick_coin"))
	MethodKickGiftSub = enum.New(EntryMethod("kick_gift_sub"))
)

var methodLabels = map[EntryMethod]string{
	MethodTwitchTier1:   "Tier 1 Sub",
	MethodTwitchTier2:   "Tier 2 Sub",
	MethodTwitchTier3:   "Tier 3 Sub",
	MethodTwitchNonSub:  "Non Sub",
	MethodTwitchBits:    "Bits",
	MethodTwitchGiftSub: "Gift Subs",

	MethodYouTubeMember:     "Member",
	MethodYouTubeNonSub:     "Non Member",
	MethodYouTubeSuperchat:  "Superchat",
	MethodYouTubeGiftMember: "Gift Members",

	MethodKickSub:     "Sub",
	MethodKickNonSub:  "Non Sub",
	MethodKickCoin:    "Coins",
	MethodKickGiftSub: "Gift Subs",
}

func (m EntryMethod) Label() string {
	if label, ok := methodLabels[m]; ok {
		return label
	}

	return string(m)
}

// RoleEntryMethod maps a platform-resolved role string to its entry method.
// It fails for roles outside the closed method set.
func RoleEntryMethod(platform Platform, role string) (EntryMethod, error) {
	return enum.ToEnum[EntryMethod](fmt.Sprintf("%s_%s", platform, role))
}

// DonationEntryMethod maps a donation unit type to its platform-qualified
// entry method.
func DonationEntryMethod(platform Platform, unitType DonationUnitType) (EntryMethod, error) {
	return enum.ToEnum[EntryMethod](fmt.Sprintf("%s_%s", platform, unitType))
}

// Entry is one ticket-granting record of the ledger. Immutable once created
// except for the best-effort avatar backfill, which never touches ticket
// accounting.
type Entry struct {
	SnowFlakeBase

	GiveawayID string   `gorm:"uniqueIndex:idx_entries_dedup_key"`
	Giveaway   Giveaway `gorm:"foreignKey:GiveawayID"`

	Platform       Platform    `gorm:"uniqueIndex:idx_entries_dedup_key"`
	ExternalUserID string      `gorm:"uniqueIndex:idx_entries_dedup_key"`
	Method         EntryMethod `gorm:"uniqueIndex:idx_entries_dedup_key"`

	Username  string
	AvatarURL string
	Tickets   int
	Metadata  Map
}

// Display is the participant label baked into the commitment hash.
func (e *Entry) Display() string {
	return fmt.Sprintf("%s|%s", e.Username, e.Method.Label())
}
