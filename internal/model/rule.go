package model

type RoleRule struct {
	ID             string `json:"id"`
	Platform       string `json:"platform"`
	Role           string `json:"role"`
	TicketsPerUnit int    `json:"tickets_per_unit"`
}

type DonationRule struct {
	ID                 string `json:"id"`
	Platform           string `json:"platform"`
	UnitType           string `json:"unit_type"`
	UnitSize           int    `json:"unit_size"`
	TicketsPerUnitSize int    `json:"tickets_per_unit_size"`
}

type UpsertRoleRuleRequest struct {
	Platform       string `json:"platform"`
	Role           string `json:"role"`
	TicketsPerUnit int    `json:"tickets_per_unit"`
}

type UpsertRoleRuleResponse struct{}

type UpsertDonationRuleRequest struct {
	Platform           string `json:"platform"`
	UnitType           string `json:"unit_type"`
	UnitSize           int    `json:"unit_size"`
	TicketsPerUnitSize int    `json:"tickets_per_unit_size"`
}

type UpsertDonationRuleResponse struct{}

type ListRulesRequest struct{}

type ListRulesResponse struct {
	RoleRules     []RoleRule     `json:"role_rules"`
	DonationRules []DonationRule `json:"donation_rules"`
}
