package xcontext

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/streamdraw/backend/config"
	"github.com/streamdraw/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey            struct{}
	txKey            struct{}
	configsKey       struct{}
	loggerKey        struct{}
	httpClientKey    struct{}
	requestUserIDKey struct{}
	snowflakeKey     struct{}
)

type txHolder struct {
	tx   *gorm.DB
	done bool
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction began by WithDBTransaction if any, otherwise the
// root database handle.
func DB(ctx context.Context) *gorm.DB {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && !holder.done {
		return holder.tx
	}

	if db, ok := ctx.Value(dbKey{}).(*gorm.DB); ok {
		return db
	}

	panic("no database in context")
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txHolder{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && !holder.done {
		holder.tx.Commit()
		holder.done = true
	}

	return ctx
}

// WithRollbackDBTransaction rollbacks the current transaction. It is a no-op
// after WithCommitDBTransaction, so it is safe to defer unconditionally.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && !holder.done {
		holder.tx.Rollback()
		holder.done = true
	}

	return ctx
}

// Detach copies the ambient carriers (root database handle, logger, configs,
// http client) into a fresh background context. Used by fire-and-forget work
// that must not inherit the request cancelation or its transaction.
func Detach(ctx context.Context) context.Context {
	detached := context.Background()
	if db, ok := ctx.Value(dbKey{}).(*gorm.DB); ok {
		detached = WithDB(detached, db)
	}

	detached = WithLogger(detached, Logger(ctx))
	detached = WithConfigs(detached, Configs(ctx))
	detached = WithHTTPClient(detached, HTTPClient(ctx))
	return detached
}

func WithConfigs(ctx context.Context, configs config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, configs)
}

func Configs(ctx context.Context) config.Configs {
	if configs, ok := ctx.Value(configsKey{}).(config.Configs); ok {
		return configs
	}

	return config.Configs{}
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger(logger.INFO)
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	if client, ok := ctx.Value(httpClientKey{}).(*http.Client); ok {
		return client
	}

	return http.DefaultClient
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(requestUserIDKey{}).(string); ok {
		return id
	}

	return ""
}

func WithSnowflakeNode(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowflakeNode(ctx context.Context) *snowflake.Node {
	if node, ok := ctx.Value(snowflakeKey{}).(*snowflake.Node); ok {
		return node
	}

	node, err := snowflake.NewNode(0)
	if err != nil {
		panic(err)
	}

	return node
}
