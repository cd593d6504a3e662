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

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	newSession := func(expiresIn time.Duration) *session.Session {
		now := time.Now()
		return &session.Session{
			Token:     uuid.NewString(),
			UserID:    uuid.New(),
			CreatedAt: now,
			ExpiresAt: now.Add(expiresIn),
		}
	}

	t.Run("create and get returns a copy", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		s := newSession(time.Hour)
		require.NoError(t, store.Create(ctx, s))

		got, err := store.Get(ctx, s.Token)
		require.NoError(t, err)
		assert.Equal(t, s.UserID, got.UserID)

		tid := uuid.New()
		got.ActiveTenantID = &tid

		unchanged, err := store.Get(ctx, s.Token)
		require.NoError(t, err)
		assert.Nil(t, unchanged.ActiveTenantID)
	})

	t.Run("update missing session", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		err := store.Update(ctx, newSession(time.Hour))
		require.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("delete expired keeps live sessions", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		live := newSession(time.Hour)
		dead := newSession(-time.Minute)
		require.NoError(t, store.Create(ctx, live))
		require.NoError(t, store.Create(ctx, dead))

		require.NoError(t, store.DeleteExpired(ctx))

		_, err := store.Get(ctx, live.Token)
		require.NoError(t, err)
		_, err = store.Get(ctx, dead.Token)
		require.ErrorIs(t, err, session.ErrSessionNotFound)
	})
}
