package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const tokenBytes = 32

// MembershipChecker verifies that a user belongs to a tenant before a
// session is bound to it. It returns an error when the user is not a
// member.
type MembershipChecker func(ctx context.Context, userID, tenantID uuid.UUID) error

// Manager issues, validates, and revokes sessions on top of a Store.
type Manager struct {
	store           Store
	ttl             time.Duration
	cleanupInterval time.Duration
	checkMembership MembershipChecker
	log             *slog.Logger

	stopCleanup chan struct{}
	done        chan struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL sets the fixed session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithCleanupInterval sets how often expired sessions are purged.
// Zero disables the background cleanup loop.
func WithCleanupInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.cleanupInterval = interval
	}
}

// WithMembershipChecker installs the tenant membership check used by
// SwitchTenant.
func WithMembershipChecker(check MembershipChecker) Option {
	return func(m *Manager) {
		m.checkMembership = check
	}
}

// WithLogger sets the logger for cleanup failures.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates a session manager. Sessions live for a fixed seven days
// unless WithTTL overrides it.
func New(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:           store,
		ttl:             7 * 24 * time.Hour,
		cleanupInterval: time.Hour,
		log:             slog.Default(),
		stopCleanup:     make(chan struct{}),
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.cleanupInterval > 0 {
		go m.cleanupLoop()
	} else {
		close(m.done)
	}
	return m
}

// Create issues a new session for the user with no active tenant.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate resolves a token to a live session. It returns
// ErrSessionNotFound for unknown tokens and ErrSessionExpired for
// expired ones. Validation never extends the expiry.
func (m *Manager) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.IsExpired() {
		return nil, ErrSessionExpired
	}
	return s, nil
}

// SwitchTenant points the session at another workspace after verifying
// membership. Concurrent switches on the same session are last write
// wins.
func (m *Manager) SwitchTenant(ctx context.Context, token string, tenantID uuid.UUID) (*Session, error) {
	s, err := m.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	if m.checkMembership != nil {
		if err := m.checkMembership(ctx, s.UserID, tenantID); err != nil {
			return nil, err
		}
	}

	s.ActiveTenantID = &tenantID
	if err := m.store.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Destroy revokes a session. Revoking an unknown token is a no-op.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}

// Close stops the background cleanup loop.
func (m *Manager) Close() {
	select {
	case <-m.stopCleanup:
	default:
		close(m.stopCleanup)
	}
	<-m.done
}

func (m *Manager) cleanupLoop() {
	defer close(m.done)

	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := m.store.DeleteExpired(ctx); err != nil {
				m.log.ErrorContext(ctx, "session cleanup failed", slog.Any("error", err))
			}
			cancel()
		case <-m.stopCleanup:
			return
		}
	}
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
