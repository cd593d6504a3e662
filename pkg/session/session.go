package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated browsing session. ActiveTenantID is nil
// until the user picks a workspace; resolution then falls back to the
// user's first membership.
type Session struct {
	Token          string     `json:"token"`
	UserID         uuid.UUID  `json:"user_id"`
	ActiveTenantID *uuid.UUID `json:"active_tenant_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      time.Time  `json:"expires_at"`
}

// IsExpired reports whether the session passed its fixed expiry.
// Expiry never slides: reads do not extend the session.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store defines the persistence operations for sessions.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by token. Returns ErrSessionNotFound if
	// absent. Expiry is checked by the Manager, not the store, except
	// for backends with native TTL eviction.
	Get(ctx context.Context, token string) (*Session, error)

	// Update overwrites a session. Last write wins on concurrent updates.
	Update(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes sessions past their expiry.
	DeleteExpired(ctx context.Context) error
}
