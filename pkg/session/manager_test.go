package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoval-dev/tenantcore/pkg/session"
)

func newTestManager(t *testing.T, opts ...session.Option) *session.Manager {
	t.Helper()

	opts = append([]session.Option{session.WithCleanupInterval(0)}, opts...)
	m := session.New(session.NewMemoryStore(), opts...)
	t.Cleanup(m.Close)
	return m
}

func TestManagerCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newTestManager(t)

	userID := uuid.New()
	s, err := m.Create(ctx, userID)
	require.NoError(t, err)

	assert.NotEmpty(t, s.Token)
	assert.Equal(t, userID, s.UserID)
	assert.Nil(t, s.ActiveTenantID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), s.ExpiresAt, time.Minute)

	// Tokens must be unique across sessions.
	s2, err := m.Create(ctx, userID)
	require.NoError(t, err)
	assert.NotEqual(t, s.Token, s2.Token)
}

func TestManagerValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("valid session", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		s, err := m.Create(ctx, uuid.New())
		require.NoError(t, err)

		got, err := m.Validate(ctx, s.Token)
		require.NoError(t, err)
		assert.Equal(t, s.UserID, got.UserID)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		_, err := m.Validate(ctx, "no-such-token")
		require.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		_, err := m.Validate(ctx, "")
		require.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("expired session", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t, session.WithTTL(time.Millisecond))
		s, err := m.Create(ctx, uuid.New())
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		_, err = m.Validate(ctx, s.Token)
		require.ErrorIs(t, err, session.ErrSessionExpired)
	})

	t.Run("validation does not extend expiry", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t)
		s, err := m.Create(ctx, uuid.New())
		require.NoError(t, err)

		first, err := m.Validate(ctx, s.Token)
		require.NoError(t, err)

		second, err := m.Validate(ctx, s.Token)
		require.NoError(t, err)
		assert.True(t, first.ExpiresAt.Equal(second.ExpiresAt))
	})
}

func TestManagerSwitchTenant(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("member switch succeeds", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		m := newTestManager(t, session.WithMembershipChecker(
			func(ctx context.Context, userID, tid uuid.UUID) error {
				if tid != tenantID {
					return assert.AnError
				}
				return nil
			},
		))

		s, err := m.Create(ctx, uuid.New())
		require.NoError(t, err)

		got, err := m.SwitchTenant(ctx, s.Token, tenantID)
		require.NoError(t, err)
		require.NotNil(t, got.ActiveTenantID)
		assert.Equal(t, tenantID, *got.ActiveTenantID)

		// Change is persisted.
		again, err := m.Validate(ctx, s.Token)
		require.NoError(t, err)
		require.NotNil(t, again.ActiveTenantID)
		assert.Equal(t, tenantID, *again.ActiveTenantID)
	})

	t.Run("non-member switch rejected", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t, session.WithMembershipChecker(
			func(ctx context.Context, userID, tid uuid.UUID) error {
				return assert.AnError
			},
		))

		s, err := m.Create(ctx, uuid.New())
		require.NoError(t, err)

		_, err = m.SwitchTenant(ctx, s.Token, uuid.New())
		require.ErrorIs(t, err, assert.AnError)

		// Session keeps its previous state.
		got, err := m.Validate(ctx, s.Token)
		require.NoError(t, err)
		assert.Nil(t, got.ActiveTenantID)
	})
}

func TestManagerDestroy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newTestManager(t)

	s, err := m.Create(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, s.Token))
	_, err = m.Validate(ctx, s.Token)
	require.ErrorIs(t, err, session.ErrSessionNotFound)

	// Destroying again is a no-op.
	require.NoError(t, m.Destroy(ctx, s.Token))
	require.NoError(t, m.Destroy(ctx, "never-existed"))
}
