package billing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoval-dev/tenantcore/pkg/billing"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("miss on both keys", func(t *testing.T) {
		t.Parallel()

		store := billing.NewMemoryStore()
		_, err := store.Get(ctx, uuid.New())
		require.ErrorIs(t, err, billing.ErrSubscriptionNotFound)
		_, err = store.GetByProviderID(ctx, "sub_x")
		require.ErrorIs(t, err, billing.ErrSubscriptionNotFound)
	})

	t.Run("save indexes provider id", func(t *testing.T) {
		t.Parallel()

		store := billing.NewMemoryStore()
		tenantID := uuid.New()
		require.NoError(t, store.Save(ctx, &billing.Subscription{
			TenantID:      tenantID,
			PlanID:        "pro",
			ProviderSubID: "sub_a",
			Status:        billing.StatusActive,
		}))

		byProvider, err := store.GetByProviderID(ctx, "sub_a")
		require.NoError(t, err)
		assert.Equal(t, tenantID, byProvider.TenantID)
	})

	t.Run("upsert preserves created_at and reindexes", func(t *testing.T) {
		t.Parallel()

		store := billing.NewMemoryStore()
		tenantID := uuid.New()
		require.NoError(t, store.Save(ctx, &billing.Subscription{
			TenantID: tenantID, PlanID: "pro", ProviderSubID: "sub_a",
		}))
		first, err := store.Get(ctx, tenantID)
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, &billing.Subscription{
			TenantID: tenantID, PlanID: "free", ProviderSubID: "",
		}))
		second, err := store.Get(ctx, tenantID)
		require.NoError(t, err)

		assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
		assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))

		// Old provider id no longer resolves.
		_, err = store.GetByProviderID(ctx, "sub_a")
		require.ErrorIs(t, err, billing.ErrSubscriptionNotFound)
	})
}
