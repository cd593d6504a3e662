package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey struct{}

// WithID binds the resolved tenant id to the context. Business-logic code
// running after tenant resolution must filter every tenant-scoped read and
// write by this id.
func WithID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IDFromContext retrieves the tenant id from the context.
// Returns zero UUID and false if no tenant is bound.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(contextKey{}).(uuid.UUID)
	return id, ok
}

// MustIDFromContext retrieves the tenant id from the context.
// Panics if no tenant is bound. Use only in handlers that declare the
// tenant stage as a prerequisite.
func MustIDFromContext(ctx context.Context) uuid.UUID {
	id, ok := IDFromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return id
}

// LoggerExtractor returns a logger ContextExtractor that annotates every
// record produced inside a tenant-scoped request with the tenant id.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
