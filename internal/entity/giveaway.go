package entity

import (
	"github.com/streamdraw/backend/pkg/enum"
)

type Platform string

var (
	PlatformTwitch  = enum.New(Platform("twitch"))
	PlatformYouTube = enum.New(Platform("youtube"))
	PlatformKick    = enum.New(Platform("kick"))
)

// DonationWindow qualifies the donation totals collaborators aggregate before
// calling the ticket evaluator. The window is a giveaway-level setting, not a
// per-rule one.
type DonationWindow string

var (
	WindowDaily   = enum.New(DonationWindow("daily"))
	WindowWeekly  = enum.New(DonationWindow("weekly"))
	WindowMonthly = enum.New(DonationWindow("monthly"))
	WindowTotal   = enum.New(DonationWindow("total"))
)

type Giveaway struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Name           string
	Platforms      Array[Platform]
	AllowedRoles   Array[string]
	DonationWindow DonationWindow
}

// HasPlatform reports whether the giveaway accepts entries from platform. An
// empty platform list means every platform is accepted.
func (g *Giveaway) HasPlatform(platform Platform) bool {
	if len(g.Platforms) == 0 {
		return true
	}

	for _, p := range g.Platforms {
		if p == platform {
			return true
		}
	}

	return false
}

// AllowsRole reports whether role is in the giveaway allow-list. An empty
// allow-list accepts every role.
func (g *Giveaway) AllowsRole(role string) bool {
	if len(g.AllowedRoles) == 0 {
		return true
	}

	for _, r := range g.AllowedRoles {
		if r == role {
			return true
		}
	}

	return false
}
