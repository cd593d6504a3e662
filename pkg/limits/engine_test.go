package limits_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoval-dev/tenantcore/pkg/billing"
	"github.com/mkoval-dev/tenantcore/pkg/limits"
)

func testCatalog(t *testing.T) *billing.Catalog {
	t.Helper()

	catalog, err := billing.NewCatalog(context.Background(), billing.StaticSource{
		{
			ID:      "free",
			Default: true,
			Limits: map[billing.Resource]int64{
				billing.ResourceTodos:   10,
				billing.ResourceMembers: 3,
			},
		},
		{
			ID:             "pro",
			PriceIDMonthly: "pri_pro_m",
			Limits: map[billing.Resource]int64{
				billing.ResourceTodos:   billing.Unlimited,
				billing.ResourceMembers: 25,
			},
		},
	})
	require.NoError(t, err)
	return catalog
}

func fixedCounter(n int64) limits.CounterFunc {
	return func(ctx context.Context, tenantID uuid.UUID) (int64, error) {
		return n, nil
	}
}

func newEngine(t *testing.T, subs *billing.MemoryStore, count int64) *limits.Engine {
	t.Helper()

	registry := limits.NewRegistry()
	registry.Register(billing.ResourceTodos, fixedCounter(count))
	return limits.NewEngine(subs, testCatalog(t), registry)
}

func TestCanCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("below limit allowed", func(t *testing.T) {
		t.Parallel()

		engine := newEngine(t, billing.NewMemoryStore(), 9)
		require.NoError(t, engine.CanCreate(ctx, uuid.New(), billing.ResourceTodos))
	})

	t.Run("at limit denied with reading", func(t *testing.T) {
		t.Parallel()

		engine := newEngine(t, billing.NewMemoryStore(), 10)
		err := engine.CanCreate(ctx, uuid.New(), billing.ResourceTodos)
		require.ErrorIs(t, err, limits.ErrLimitReached)

		var le *limits.LimitError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, int64(10), le.Current)
		assert.Equal(t, int64(10), le.Limit)
	})

	t.Run("unlimited always allowed", func(t *testing.T) {
		t.Parallel()

		subs := billing.NewMemoryStore()
		tenantID := uuid.New()
		require.NoError(t, subs.Save(ctx, &billing.Subscription{
			TenantID: tenantID, PlanID: "pro", Status: billing.StatusActive,
		}))

		engine := newEngine(t, subs, 1_000_000)
		require.NoError(t, engine.CanCreate(ctx, tenantID, billing.ResourceTodos))
	})

	t.Run("zero limit denied without counting", func(t *testing.T) {
		t.Parallel()

		// No counter registered for members: a zero limit must deny
		// before it ever consults one.
		registry := limits.NewRegistry()
		registry.Register(billing.ResourceTodos, fixedCounter(0))
		engine := limits.NewEngine(billing.NewMemoryStore(), testCatalog(t), registry)

		// tenants is absent from both plans' limit maps, so it reads as 0.
		err := engine.CanCreate(ctx, uuid.New(), billing.ResourceTenants)
		require.ErrorIs(t, err, limits.ErrLimitReached)

		var le *limits.LimitError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, int64(0), le.Current)
		assert.Equal(t, int64(0), le.Limit)
	})

	t.Run("missing counter surfaces", func(t *testing.T) {
		t.Parallel()

		engine := limits.NewEngine(billing.NewMemoryStore(), testCatalog(t), limits.NewRegistry())
		err := engine.CanCreate(ctx, uuid.New(), billing.ResourceTodos)
		require.ErrorIs(t, err, limits.ErrNoCounterRegistered)
	})

	t.Run("counter failure propagates", func(t *testing.T) {
		t.Parallel()

		registry := limits.NewRegistry()
		registry.Register(billing.ResourceTodos, func(ctx context.Context, tenantID uuid.UUID) (int64, error) {
			return 0, assert.AnError
		})
		engine := limits.NewEngine(billing.NewMemoryStore(), testCatalog(t), registry)

		err := engine.CanCreate(ctx, uuid.New(), billing.ResourceTodos)
		require.ErrorIs(t, err, assert.AnError)
		assert.False(t, errors.Is(err, limits.ErrLimitReached))
	})
}

func TestUsage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	engine := newEngine(t, billing.NewMemoryStore(), 7)
	info, err := engine.Usage(ctx, uuid.New(), billing.ResourceTodos)
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Current)
	assert.Equal(t, int64(10), info.Limit)
}

func TestPercentageAndNudgeLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		current int64
		limit   int64
		pct     int
		level   limits.Level
	}{
		{"empty", 0, 10, 0, limits.LevelNone},
		{"below warning", 6, 10, 60, limits.LevelNone},
		{"warning at 70", 7, 10, 70, limits.LevelWarning},
		{"critical at 90", 9, 10, 90, limits.LevelCritical},
		{"full", 10, 10, 100, limits.LevelLimit},
		{"overshoot capped", 12, 10, 100, limits.LevelLimit},
		{"unlimited", 5000, billing.Unlimited, -1, limits.LevelNone},
		{"zero limit", 0, 0, 100, limits.LevelLimit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			u := limits.UsageInfo{Current: tc.current, Limit: tc.limit}
			assert.Equal(t, tc.pct, u.Percentage())
			assert.Equal(t, tc.level, u.NudgeLevel())
		})
	}
}
