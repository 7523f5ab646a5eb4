package model

import "time"

type Entry struct {
	ID             int64          `json:"id"`
	GiveawayID     string         `json:"giveaway_id"`
	Platform       string         `json:"platform"`
	ExternalUserID string         `json:"external_user_id"`
	Username       string         `json:"username"`
	AvatarURL      string         `json:"avatar_url,omitempty"`
	Method         string         `json:"method"`
	MethodLabel    string         `json:"method_label"`
	Tickets        int            `json:"tickets"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

type AddEntryRequest struct {
	GiveawayID     string         `json:"giveaway_id"`
	Platform       string         `json:"platform"`
	ExternalUserID string         `json:"external_user_id"`
	Username       string         `json:"username"`
	AvatarURL      string         `json:"avatar_url"`
	Method         string         `json:"method"`
	Tickets        int            `json:"tickets"`
	Metadata       map[string]any `json:"metadata"`
}

type AddEntryResponse struct {
	// Created reports whether this call inserted the entry. False means an
	// entry already existed for the dedup key; callers treat that as
	// success, not failure.
	Created bool  `json:"created"`
	Entry   Entry `json:"entry"`
}

// RecordParticipantRequest evaluates the configured rules for a resolved
// viewer state and records one entry per method that yields tickets.
type RecordParticipantRequest struct {
	GiveawayID     string         `json:"giveaway_id"`
	Platform       string         `json:"platform"`
	ExternalUserID string         `json:"external_user_id"`
	Username       string         `json:"username"`
	AvatarURL      string         `json:"avatar_url"`
	Role           string         `json:"role"`
	DonationTotals map[string]int `json:"donation_totals"`
}

type RecordParticipantResponse struct {
	Evaluation EvaluateTicketsResponse `json:"evaluation"`
	Entries    []AddEntryResponse      `json:"entries"`
}

type ListEntriesRequest struct {
	GiveawayID string `json:"giveaway_id"`
}

type ListEntriesResponse struct {
	Entries      []Entry `json:"entries"`
	TotalTickets int     `json:"total_tickets"`
}
