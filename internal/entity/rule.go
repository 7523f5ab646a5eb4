package entity

import (
	"github.com/streamdraw/backend/pkg/enum"
)

// DonationUnitType is the kind of donation a DonationRule converts into
// tickets.
type DonationUnitType string

var (
	UnitBits       = enum.New(DonationUnitType("bits"))
	UnitGiftSub    = enum.New(DonationUnitType("gift_sub"))
	UnitSuperchat  = enum.New(DonationUnitType("superchat"))
	UnitGiftMember = enum.New(DonationUnitType("gift_member"))
	UnitCoin       = enum.New(DonationUnitType("coin"))
)

// RoleRule defines the base tickets granted for a viewer subscription role.
// One rule per (user, platform, role); the non_sub role is always qualified
// by its platform and never shared across platforms.
type RoleRule struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_role_rules_key"`
	User   User   `gorm:"foreignKey:UserID"`

	Platform       Platform `gorm:"uniqueIndex:idx_role_rules_key"`
	Role           string   `gorm:"uniqueIndex:idx_role_rules_key"`
	TicketsPerUnit int
}

// DonationRule converts a donation quantity into tickets with
// tickets = floor(quantity/unit_size) * tickets_per_unit_size.
type DonationRule struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_donation_rules_key"`
	User   User   `gorm:"foreignKey:UserID"`

	Platform           Platform         `gorm:"uniqueIndex:idx_donation_rules_key"`
	UnitType           DonationUnitType `gorm:"uniqueIndex:idx_donation_rules_key"`
	UnitSize           int
	TicketsPerUnitSize int
}

// Tickets applies the rule formula to a donation quantity.
func (r *DonationRule) Tickets(quantity int) int {
	if r.UnitSize <= 0 {
		return 0
	}

	return quantity / r.UnitSize * r.TicketsPerUnitSize
}
