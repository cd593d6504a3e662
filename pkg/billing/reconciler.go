package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Reconciler folds provider events into subscription state. Handlers
// are idempotent and tolerate out-of-order delivery: each event writes
// the state it describes rather than assuming what came before.
// Lookups that miss are logged and swallowed so the provider does not
// retry events this system can never apply.
type Reconciler struct {
	store   Store
	catalog *Catalog
	log     *slog.Logger
}

// NewReconciler creates a reconciler. Panics on nil dependencies since
// they indicate a wiring bug, not a runtime condition.
func NewReconciler(store Store, catalog *Catalog, log *slog.Logger) *Reconciler {
	if store == nil || catalog == nil {
		panic("billing: reconciler requires a store and a catalog")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{store: store, catalog: catalog, log: log}
}

// Apply dispatches one event. Storage failures propagate so the
// webhook layer can signal the provider to retry; everything else
// resolves locally.
func (r *Reconciler) Apply(ctx context.Context, event Event) error {
	switch e := event.(type) {
	case CheckoutCompleted:
		return r.applyCheckoutCompleted(ctx, e)
	case SubscriptionUpdated:
		return r.applySubscriptionUpdated(ctx, e)
	case SubscriptionDeleted:
		return r.applySubscriptionDeleted(ctx, e)
	case PaymentFailed:
		return r.applyPaymentFailed(ctx, e)
	case Unhandled:
		r.log.DebugContext(ctx, "ignoring provider event",
			slog.String("provider_event", e.ProviderEvent))
		return nil
	default:
		return fmt.Errorf("unknown billing event %T", event)
	}
}

func (r *Reconciler) applyCheckoutCompleted(ctx context.Context, e CheckoutCompleted) error {
	if _, err := r.catalog.ByID(e.PlanID); err != nil {
		r.log.WarnContext(ctx, "checkout references unknown plan",
			slog.String("plan_id", e.PlanID),
			slog.String("tenant_id", e.TenantID.String()))
		return nil
	}

	sub := &Subscription{
		TenantID:          e.TenantID,
		PlanID:            e.PlanID,
		ProviderSubID:     e.ProviderSubID,
		Status:            MapProviderStatus(e.ProviderStatus),
		Interval:          ParseInterval(e.ProviderInterval),
		PeriodStart:       e.PeriodStart,
		PeriodEnd:         e.PeriodEnd,
		CancelAtPeriodEnd: e.CancelAtPeriodEnd,
	}
	return r.store.Save(ctx, sub)
}

func (r *Reconciler) applySubscriptionUpdated(ctx context.Context, e SubscriptionUpdated) error {
	sub, ok, err := r.lookup(ctx, e.TenantID, e.ProviderSubID)
	if err != nil || !ok {
		return err
	}

	if e.PriceID != "" {
		plan, err := r.catalog.ByPriceID(e.PriceID)
		if err != nil {
			r.log.WarnContext(ctx, "subscription update references unknown price",
				slog.String("price_id", e.PriceID),
				slog.String("provider_sub_id", e.ProviderSubID))
		} else {
			sub.PlanID = plan.ID
		}
	}

	sub.ProviderSubID = e.ProviderSubID
	sub.Status = MapProviderStatus(e.ProviderStatus)
	if e.ProviderInterval != "" {
		sub.Interval = ParseInterval(e.ProviderInterval)
	}
	if e.PeriodStart != nil {
		sub.PeriodStart = e.PeriodStart
	}
	if e.PeriodEnd != nil {
		sub.PeriodEnd = e.PeriodEnd
	}
	sub.CancelAtPeriodEnd = e.CancelAtPeriodEnd

	return r.store.Save(ctx, sub)
}

func (r *Reconciler) applySubscriptionDeleted(ctx context.Context, e SubscriptionDeleted) error {
	sub, ok, err := r.lookup(ctx, uuid.Nil, e.ProviderSubID)
	if err != nil || !ok {
		return err
	}

	sub.PlanID = r.catalog.Default().ID
	sub.Status = StatusCanceled
	sub.ProviderSubID = ""
	sub.PeriodStart = nil
	sub.PeriodEnd = nil
	sub.CancelAtPeriodEnd = false

	return r.store.Save(ctx, sub)
}

func (r *Reconciler) applyPaymentFailed(ctx context.Context, e PaymentFailed) error {
	sub, ok, err := r.lookup(ctx, uuid.Nil, e.ProviderSubID)
	if err != nil || !ok {
		return err
	}

	sub.Status = StatusPastDue
	return r.store.Save(ctx, sub)
}

// lookup finds the subscription an event targets, by tenant first and
// provider subscription id second. A miss is logged and reported as
// (nil, false, nil): events for rows this system never created are
// acknowledged, not retried.
func (r *Reconciler) lookup(ctx context.Context, tenantID uuid.UUID, providerSubID string) (*Subscription, bool, error) {
	if tenantID != uuid.Nil {
		sub, err := r.store.Get(ctx, tenantID)
		if err == nil {
			return sub, true, nil
		}
		if !errors.Is(err, ErrSubscriptionNotFound) {
			return nil, false, err
		}
	}

	if providerSubID != "" {
		sub, err := r.store.GetByProviderID(ctx, providerSubID)
		if err == nil {
			return sub, true, nil
		}
		if !errors.Is(err, ErrSubscriptionNotFound) {
			return nil, false, err
		}
	}

	r.log.WarnContext(ctx, "event targets unknown subscription",
		slog.String("tenant_id", tenantID.String()),
		slog.String("provider_sub_id", providerSubID))
	return nil, false, nil
}
