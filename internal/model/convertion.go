package model

import (
	"github.com/streamdraw/backend/internal/entity"
)

func ConvertEntry(e *entity.Entry) Entry {
	return Entry{
		ID:             e.ID,
		GiveawayID:     e.GiveawayID,
		Platform:       string(e.Platform),
		ExternalUserID: e.ExternalUserID,
		Username:       e.Username,
		AvatarURL:      e.AvatarURL,
		Method:         string(e.Method),
		MethodLabel:    e.Method.Label(),
		Tickets:        e.Tickets,
		Metadata:       e.Metadata,
		CreatedAt:      e.CreatedAt,
	}
}

func ConvertWinnerRecord(record *entity.WinnerRecord) WinnerRecord {
	ranges := make([]ParticipantRange, 0, len(record.ParticipantRanges))
	for _, r := range record.ParticipantRanges {
		ranges = append(ranges, ParticipantRange(r))
	}

	return WinnerRecord{
		ID:              record.ID,
		GiveawayID:      record.GiveawayID,
		WinnerEntryID:   record.WinnerEntryID,
		Status:          string(record.Status),
		Ranges:          ranges,
		TotalTickets:    record.TotalTickets,
		ListHashAlgo:    record.ListHashAlgo,
		ListHash:        record.ListHash,
		OracleRandom:    record.OracleRandom,
		OracleSignature: record.OracleSignature,
		OracleVerifyURL: record.OracleVerifyURL,
		DrawnNumber:     record.DrawnNumber,
		Verified:        record.Verified,
		CreatedAt:       record.CreatedAt,
	}
}

func ConvertGiveaway(g *entity.Giveaway, windowKey string) Giveaway {
	platforms := make([]string, 0, len(g.Platforms))
	for _, p := range g.Platforms {
		platforms = append(platforms, string(p))
	}

	return Giveaway{
		ID:             g.ID,
		UserID:         g.UserID,
		Name:           g.Name,
		Platforms:      platforms,
		AllowedRoles:   g.AllowedRoles,
		DonationWindow: string(g.DonationWindow),
		WindowKey:      windowKey,
		CreatedAt:      g.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func ConvertRoleRule(rule *entity.RoleRule) RoleRule {
	return RoleRule{
		ID:             rule.ID,
		Platform:       string(rule.Platform),
		Role:           rule.Role,
		TicketsPerUnit: rule.TicketsPerUnit,
	}
}

func ConvertDonationRule(rule *entity.DonationRule) DonationRule {
	return DonationRule{
		ID:                 rule.ID,
		Platform:           string(rule.Platform),
		UnitType:           string(rule.UnitType),
		UnitSize:           rule.UnitSize,
		TicketsPerUnitSize: rule.TicketsPerUnitSize,
	}
}
