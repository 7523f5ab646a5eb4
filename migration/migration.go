package migration

import (
	"context"

	"github.com/streamdraw/backend/internal/entity"
)

// Migrators maps a release version to the data migration shipped with it.
// Schema changes are handled by entity.MigrateTable; these functions exist
// for data backfills that auto-migration cannot express.
var Migrators = map[string]func(ctx context.Context) error{
	"0.0.1": migrate0_0_1,
}

func migrate0_0_1(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}
