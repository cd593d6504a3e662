package billing

import (
	"time"

	"github.com/google/uuid"
)

// Event is a normalized subscription lifecycle notification. The set
// of implementations is closed; providers translate their raw webhook
// payloads into these before reconciliation.
type Event interface {
	eventKind() string
}

// CheckoutCompleted signals that a tenant finished checkout and a
// provider subscription now exists for it.
type CheckoutCompleted struct {
	TenantID          uuid.UUID
	PlanID            string
	ProviderSubID     string
	ProviderStatus    string
	ProviderInterval  string
	PeriodStart       *time.Time
	PeriodEnd         *time.Time
	CancelAtPeriodEnd bool
}

// SubscriptionUpdated signals a change to an existing provider
// subscription: renewal, plan change, cancellation scheduling, or a
// status transition. TenantID may be uuid.Nil when the provider event
// carries no tenant reference; the subscription is then located by
// ProviderSubID.
type SubscriptionUpdated struct {
	TenantID          uuid.UUID
	ProviderSubID     string
	PriceID           string
	ProviderStatus    string
	ProviderInterval  string
	PeriodStart       *time.Time
	PeriodEnd         *time.Time
	CancelAtPeriodEnd bool
}

// SubscriptionDeleted signals the provider subscription ended; the
// tenant drops to the default plan.
type SubscriptionDeleted struct {
	ProviderSubID string
}

// PaymentFailed signals a failed renewal charge. Only the status
// changes; entitlements survive the grace period.
type PaymentFailed struct {
	ProviderSubID string
}

// Unhandled wraps a provider event type the reconciler does not act
// on. Webhook handlers acknowledge it with success so the provider
// stops retrying.
type Unhandled struct {
	ProviderEvent string
}

func (CheckoutCompleted) eventKind() string   { return "checkout_completed" }
func (SubscriptionUpdated) eventKind() string { return "subscription_updated" }
func (SubscriptionDeleted) eventKind() string { return "subscription_deleted" }
func (PaymentFailed) eventKind() string       { return "payment_failed" }
func (Unhandled) eventKind() string           { return "unhandled" }
