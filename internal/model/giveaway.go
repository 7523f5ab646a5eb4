package model

import "time"

type Giveaway struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	Name           string   `json:"name"`
	Platforms      []string `json:"platforms"`
	AllowedRoles   []string `json:"allowed_roles"`
	DonationWindow string   `json:"donation_window"`
	WindowKey      string   `json:"window_key"`
	CreatedAt      string   `json:"created_at"`
}

type CreateGiveawayRequest struct {
	Name           string   `json:"name"`
	Platforms      []string `json:"platforms"`
	AllowedRoles   []string `json:"allowed_roles"`
	DonationWindow string   `json:"donation_window"`
}

type CreateGiveawayResponse struct {
	ID string `json:"id"`
}

type GetGiveawayRequest struct {
	GiveawayID string `json:"giveaway_id"`
}

type GetGiveawayResponse struct {
	Giveaway Giveaway `json:"giveaway"`
}

// ResetGiveawayRequest asks for a full ledger wipe of the giveaway before a
// collaborator re-syncs entries from scratch. Winner history is wiped with
// the ledger since its entry references become dangling.
type ResetGiveawayRequest struct {
	GiveawayID string `json:"giveaway_id"`
}

type ResetGiveawayResponse struct {
	DeletedAt time.Time `json:"deleted_at"`
}
