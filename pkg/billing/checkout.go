package billing

import (
	"context"

	"github.com/google/uuid"
)

// CheckoutProvider creates hosted checkout links at the payment
// provider.
type CheckoutProvider interface {
	CreateCheckoutLink(ctx context.Context, tenantID uuid.UUID, planID, priceID, successURL string) (string, error)
}

// Checkout starts plan upgrades. The default plan activates locally
// with no provider round trip; paid plans go through the provider's
// hosted checkout and activate when the webhook arrives.
type Checkout struct {
	provider CheckoutProvider
	catalog  *Catalog
	store    Store
}

// NewCheckout creates a checkout flow.
func NewCheckout(provider CheckoutProvider, catalog *Catalog, store Store) *Checkout {
	return &Checkout{provider: provider, catalog: catalog, store: store}
}

// InitiateResult is the outcome of starting a checkout. Either the
// plan activated immediately (URL empty) or the user must visit the
// hosted checkout URL.
type InitiateResult struct {
	CheckoutURL string `json:"checkout_url,omitempty"`
	Activated   bool   `json:"activated"`
}

// Initiate starts a plan change for a tenant.
func (c *Checkout) Initiate(ctx context.Context, tenantID uuid.UUID, planID string, interval Interval, successURL string) (*InitiateResult, error) {
	plan, err := c.catalog.ByID(planID)
	if err != nil {
		return nil, err
	}

	// Downgrading to the free default needs no payment.
	if plan.Default {
		sub := &Subscription{
			TenantID: tenantID,
			PlanID:   plan.ID,
			Status:   StatusActive,
			Interval: interval,
		}
		if err := c.store.Save(ctx, sub); err != nil {
			return nil, err
		}
		return &InitiateResult{Activated: true}, nil
	}

	priceID := plan.PriceIDMonthly
	if interval == IntervalYearly {
		priceID = plan.PriceIDYearly
	}
	if priceID == "" {
		return nil, ErrPriceNotConfigured
	}

	url, err := c.provider.CreateCheckoutLink(ctx, tenantID, plan.ID, priceID, successURL)
	if err != nil {
		return nil, err
	}
	return &InitiateResult{CheckoutURL: url}, nil
}
