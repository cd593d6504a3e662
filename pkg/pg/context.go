package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type poolCtxKey struct{}

// WithPool binds a connection pool to the context. Request pipelines attach
// the pool once, up front, so every later stage and handler reads the same
// data-access handle.
func WithPool(ctx context.Context, pool *pgxpool.Pool) context.Context {
	return context.WithValue(ctx, poolCtxKey{}, pool)
}

// PoolFromContext retrieves the bound pool from the context.
func PoolFromContext(ctx context.Context) (*pgxpool.Pool, bool) {
	pool, ok := ctx.Value(poolCtxKey{}).(*pgxpool.Pool)
	return pool, ok
}

// MustPoolFromContext retrieves the bound pool or panics. Use only in code
// paths that declare the binding stage as a prerequisite.
func MustPoolFromContext(ctx context.Context) *pgxpool.Pool {
	pool, ok := PoolFromContext(ctx)
	if !ok {
		panic("pg: no database pool bound to context")
	}
	return pool
}
