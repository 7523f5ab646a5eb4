package entity

import (
	"context"

	"github.com/streamdraw/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Giveaway{},
		&RoleRule{},
		&DonationRule{},
		&Entry{},
		&WinnerRecord{},
	)
}
