package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Subscription is a tenant's billing state. One row per tenant;
// tenants without a row are on the default plan.
type Subscription struct {
	TenantID          uuid.UUID  `json:"tenant_id"`
	PlanID            string     `json:"plan_id"`
	ProviderSubID     string     `json:"provider_sub_id,omitempty"`
	Status            Status     `json:"status"`
	Interval          Interval   `json:"interval"`
	PeriodStart       *time.Time `json:"period_start,omitempty"`
	PeriodEnd         *time.Time `json:"period_end,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Store defines the persistence operations for subscriptions.
type Store interface {
	// Get returns the subscription for a tenant. Returns
	// ErrSubscriptionNotFound if the tenant has none.
	Get(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)

	// GetByProviderID returns the subscription with the given provider
	// subscription id. Returns ErrSubscriptionNotFound if absent.
	GetByProviderID(ctx context.Context, providerSubID string) (*Subscription, error)

	// Save upserts a subscription keyed by tenant id, preserving
	// CreatedAt on update.
	Save(ctx context.Context, s *Subscription) error
}
