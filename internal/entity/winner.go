package entity

import (
	"github.com/streamdraw/backend/pkg/enum"
)

type WinnerStatus string

var (
	// Winner marks the record of the latest completed draw. At most one
	// record per giveaway holds this status.
	Winner = enum.New(WinnerStatus("winner"))

	// Repick marks a superseded winner. Its entry is permanently excluded
	// from all later draws of the giveaway.
	Repick = enum.New(WinnerStatus("repick"))
)

// ParticipantRange is one half-open ticket block [Start, End) assigned to an
// entry at draw time.
type ParticipantRange struct {
	EntryID int64  `json:"entry_id"`
	Display string `json:"display"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// WinnerRecord is the append-only audit record of one draw. It snapshots the
// full ticket partition together with the oracle proof so the draw stays
// verifiable from persisted state alone.
type WinnerRecord struct {
	Base

	GiveawayID string   `gorm:"index"`
	Giveaway   Giveaway `gorm:"foreignKey:GiveawayID"`

	WinnerEntryID int64
	WinnerEntry   Entry `gorm:"foreignKey:WinnerEntryID"`

	Status WinnerStatus

	ParticipantRanges Array[ParticipantRange]
	TotalTickets      int

	ListHashAlgo string
	ListHash     string

	// OracleRandom keeps the signed payload byte-for-byte as returned by the
	// oracle; the signature only verifies against this exact serialization.
	OracleRandom    []byte
	OracleSignature string
	OracleVerifyURL string

	DrawnNumber int
	Verified    bool
}
