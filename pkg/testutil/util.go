package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/streamdraw/backend/config"
	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/pkg/logger"
	"github.com/streamdraw/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// Every pooled connection of an in-memory sqlite gets its own database.
	// Pin the pool to one connection so concurrent tests share the schema.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Configs{
		Env: "testing",
		RandomOrg: config.RandomOrgConfigs{
			APIKey:  "testing-api-key",
			Timeout: time.Second,
		},
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithSnowflakeNode(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
