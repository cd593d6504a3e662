package session

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithSession stores a session in the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext retrieves the session from the context.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}

// MustFromContext retrieves the session or panics. Use only below
// middleware that guarantees an authenticated session.
func MustFromContext(ctx context.Context) *Session {
	s, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoSessionInContext)
	}
	return s
}

// LoggerExtractor returns a logger ContextExtractor that annotates log
// records inside authenticated requests with the acting user id.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if s, ok := FromContext(ctx); ok {
			return slog.String("user_id", s.UserID.String()), true
		}
		return slog.Attr{}, false
	}
}
