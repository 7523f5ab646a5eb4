package model

// EvaluateTicketsRequest carries an already-resolved viewer state. The caller
// is responsible for fetching role and donation totals from the platform; the
// evaluator only applies the configured rules.
type EvaluateTicketsRequest struct {
	GiveawayID     string         `json:"giveaway_id"`
	Platform       string         `json:"platform"`
	Role           string         `json:"role"`
	DonationTotals map[string]int `json:"donation_totals"`
}

type DonationTickets struct {
	Method      string `json:"method"`
	MethodLabel string `json:"method_label"`
	UnitType    string `json:"unit_type"`
	Quantity    int    `json:"quantity"`
	Tickets     int    `json:"tickets"`
}

type EvaluateTicketsResponse struct {
	BaseMethod  string `json:"base_method"`
	BaseTickets int    `json:"base_tickets"`

	Donations []DonationTickets `json:"donations"`

	// TotalTickets sums the base and every donation contribution of this
	// evaluation. Contributions are still recorded as separate entries.
	TotalTickets int `json:"total_tickets"`
}
