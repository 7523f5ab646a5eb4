package model

import (
	"encoding/json"
	"time"
)

type ParticipantRange struct {
	EntryID int64  `json:"entry_id"`
	Display string `json:"display"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

type DrawWinner struct {
	EntryID     int64  `json:"entry_id"`
	Display     string `json:"display"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	DrawnNumber int    `json:"drawn_number"`
}

type DrawRequest struct {
	GiveawayID string `json:"giveaway_id"`
}

// DrawResponse is the audit payload of one completed draw. Everything needed
// to re-verify the draw offline is included: the commitment hash over the
// participant list and the verbatim signed oracle payload.
type DrawResponse struct {
	GiveawayID   string `json:"giveaway_id"`
	RepickNumber int    `json:"repick_number"`

	TotalTickets int    `json:"total_tickets"`
	ListHashAlgo string `json:"list_hash_algo"`
	ListHash     string `json:"list_hash"`

	OracleSource    string          `json:"oracle_source"`
	OracleRandom    json.RawMessage `json:"oracle_random"`
	OracleSignature string          `json:"oracle_signature"`
	OracleVerifyURL string          `json:"oracle_verify_url"`
	Verified        bool            `json:"verified"`

	Winner  DrawWinner `json:"winner"`
	DrawnAt time.Time  `json:"drawn_at"`
}

type WinnerRecord struct {
	ID              string             `json:"id"`
	GiveawayID      string             `json:"giveaway_id"`
	WinnerEntryID   int64              `json:"winner_entry_id"`
	Status          string             `json:"status"`
	Ranges          []ParticipantRange `json:"ranges"`
	TotalTickets    int                `json:"total_tickets"`
	ListHashAlgo    string             `json:"list_hash_algo"`
	ListHash        string             `json:"list_hash"`
	OracleRandom    json.RawMessage    `json:"oracle_random"`
	OracleSignature string             `json:"oracle_signature"`
	OracleVerifyURL string             `json:"oracle_verify_url"`
	DrawnNumber     int                `json:"drawn_number"`
	Verified        bool               `json:"verified"`
	CreatedAt       time.Time          `json:"created_at"`
}

type GetDrawHistoryRequest struct {
	GiveawayID string `json:"giveaway_id"`
}

type GetDrawHistoryResponse struct {
	Records []WinnerRecord `json:"records"`
}
