package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoval-dev/tenantcore/pkg/billing"
)

func testPlans() billing.StaticSource {
	return billing.StaticSource{
		{
			ID:      "free",
			Name:    "Free",
			Default: true,
			Limits: map[billing.Resource]int64{
				billing.ResourceTodos:   10,
				billing.ResourceMembers: 3,
			},
		},
		{
			ID:             "pro",
			Name:           "Pro",
			PriceIDMonthly: "pri_pro_monthly",
			PriceIDYearly:  "pri_pro_yearly",
			Limits: map[billing.Resource]int64{
				billing.ResourceTodos:   billing.Unlimited,
				billing.ResourceMembers: 25,
			},
		},
	}
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("valid catalog", func(t *testing.T) {
		t.Parallel()

		c, err := billing.NewCatalog(ctx, testPlans())
		require.NoError(t, err)

		assert.Equal(t, "free", c.Default().ID)

		p, err := c.ByID("pro")
		require.NoError(t, err)
		assert.Equal(t, "Pro", p.Name)

		monthly, err := c.ByPriceID("pri_pro_monthly")
		require.NoError(t, err)
		yearly, err := c.ByPriceID("pri_pro_yearly")
		require.NoError(t, err)
		assert.Equal(t, monthly.ID, yearly.ID)

		_, err = c.ByID("enterprise")
		require.ErrorIs(t, err, billing.ErrPlanNotFound)
		_, err = c.ByPriceID("pri_unknown")
		require.ErrorIs(t, err, billing.ErrPlanNotFound)
	})

	t.Run("rejects bad catalogs", func(t *testing.T) {
		t.Parallel()

		cases := map[string]billing.StaticSource{
			"empty": {},
			"no default": {
				{ID: "a"},
			},
			"two defaults": {
				{ID: "a", Default: true},
				{ID: "b", Default: true},
			},
			"duplicate plan id": {
				{ID: "a", Default: true},
				{ID: "a"},
			},
			"duplicate price id": {
				{ID: "a", Default: true, PriceIDMonthly: "pri_x"},
				{ID: "b", PriceIDYearly: "pri_x"},
			},
			"limit below unlimited": {
				{ID: "a", Default: true, Limits: map[billing.Resource]int64{billing.ResourceTodos: -2}},
			},
		}

		for name, src := range cases {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				_, err := billing.NewCatalog(ctx, src)
				require.ErrorIs(t, err, billing.ErrInvalidPlanConfiguration)
			})
		}
	})
}

func TestMapProviderStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]billing.Status{
		"active":             billing.StatusActive,
		"trialing":           billing.StatusTrialing,
		"past_due":           billing.StatusPastDue,
		"canceled":           billing.StatusCanceled,
		"incomplete":         billing.StatusIncomplete,
		"incomplete_expired": billing.StatusIncomplete,
		"paused":             billing.StatusPaused,
		// Unknown statuses degrade to active instead of locking tenants out.
		"some_future_status": billing.StatusActive,
		"":                   billing.StatusActive,
	}
	for in, want := range cases {
		assert.Equal(t, want, billing.MapProviderStatus(in), "status %q", in)
	}
}

func TestParseInterval(t *testing.T) {
	t.Parallel()

	assert.Equal(t, billing.IntervalYearly, billing.ParseInterval("year"))
	assert.Equal(t, billing.IntervalYearly, billing.ParseInterval("yearly"))
	assert.Equal(t, billing.IntervalMonthly, billing.ParseInterval("month"))
	assert.Equal(t, billing.IntervalMonthly, billing.ParseInterval(""))
	assert.Equal(t, billing.IntervalMonthly, billing.ParseInterval("week"))
}
