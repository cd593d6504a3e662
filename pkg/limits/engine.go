// Package limits enforces per-tenant resource quotas derived from the
// tenant's subscription plan.
package limits

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkoval-dev/tenantcore/pkg/billing"
)

// SubscriptionSource resolves a tenant's subscription. billing.Store
// satisfies it.
type SubscriptionSource interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*billing.Subscription, error)
}

// CounterFunc reports the current count of a resource in a tenant.
type CounterFunc func(ctx context.Context, tenantID uuid.UUID) (int64, error)

// Registry maps resources to their counters. Register panics on nil
// counters since that is a wiring bug.
type Registry struct {
	counters map[billing.Resource]CounterFunc
}

// NewRegistry creates an empty counter registry.
func NewRegistry() *Registry {
	return &Registry{counters: make(map[billing.Resource]CounterFunc)}
}

// Register binds a counter to a resource, replacing any previous one.
func (r *Registry) Register(res billing.Resource, counter CounterFunc) {
	if counter == nil {
		panic(fmt.Sprintf("limits: nil counter for resource %s", res))
	}
	r.counters[res] = counter
}

func (r *Registry) counter(res billing.Resource) (CounterFunc, error) {
	c, ok := r.counters[res]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoCounterRegistered, res)
	}
	return c, nil
}

// UsageInfo is a point-in-time usage reading. Limit is billing.Unlimited
// for uncapped resources.
type UsageInfo struct {
	Current int64 `json:"current"`
	Limit   int64 `json:"limit"`
}

// Level buckets usage for UI nudges.
type Level string

const (
	LevelNone     Level = "none"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
	LevelLimit    Level = "limit"
)

// Engine answers quota questions by combining the tenant's plan with
// live resource counts. It holds no state of its own; reads are as
// fresh as the underlying stores.
type Engine struct {
	subs     SubscriptionSource
	catalog  *billing.Catalog
	registry *Registry
}

// NewEngine creates a limit engine. Panics on nil dependencies.
func NewEngine(subs SubscriptionSource, catalog *billing.Catalog, registry *Registry) *Engine {
	if subs == nil || catalog == nil || registry == nil {
		panic("limits: engine requires a subscription source, catalog, and registry")
	}
	return &Engine{subs: subs, catalog: catalog, registry: registry}
}

// CanCreate checks whether a tenant may add one more unit of a
// resource. Callers run it synchronously right before the insert; the
// check is advisory under concurrency, small transient overshoot is
// acceptable. A denial is a *LimitError matching ErrLimitReached.
func (e *Engine) CanCreate(ctx context.Context, tenantID uuid.UUID, res billing.Resource) error {
	plan, err := e.planFor(ctx, tenantID)
	if err != nil {
		return err
	}

	limit := plan.Limit(res)
	if limit == billing.Unlimited {
		return nil
	}
	if limit == 0 {
		// Resource not included in the plan: no need to count.
		return &LimitError{Resource: res, Current: 0, Limit: 0}
	}

	counter, err := e.registry.counter(res)
	if err != nil {
		return err
	}
	current, err := counter(ctx, tenantID)
	if err != nil {
		return err
	}
	if current >= limit {
		return &LimitError{Resource: res, Current: current, Limit: limit}
	}
	return nil
}

// Usage returns the current usage reading for a resource.
func (e *Engine) Usage(ctx context.Context, tenantID uuid.UUID, res billing.Resource) (*UsageInfo, error) {
	plan, err := e.planFor(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	counter, err := e.registry.counter(res)
	if err != nil {
		return nil, err
	}
	current, err := counter(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &UsageInfo{Current: current, Limit: plan.Limit(res)}, nil
}

// Percentage converts a usage reading to 0..100, capped at 100.
// Unlimited resources report -1; a zero limit is already full.
func (u *UsageInfo) Percentage() int {
	if u.Limit == billing.Unlimited {
		return -1
	}
	if u.Limit == 0 {
		return 100
	}
	pct := int(u.Current * 100 / u.Limit)
	if pct > 100 {
		return 100
	}
	return pct
}

// NudgeLevel buckets the reading for upgrade prompts: warning at 70%,
// critical at 90%, limit at 100%.
func (u *UsageInfo) NudgeLevel() Level {
	pct := u.Percentage()
	switch {
	case pct < 0:
		return LevelNone
	case pct >= 100:
		return LevelLimit
	case pct >= 90:
		return LevelCritical
	case pct >= 70:
		return LevelWarning
	default:
		return LevelNone
	}
}

// planFor resolves the plan governing a tenant. Tenants without a
// subscription row are on the default plan.
func (e *Engine) planFor(ctx context.Context, tenantID uuid.UUID) (*billing.Plan, error) {
	sub, err := e.subs.Get(ctx, tenantID)
	if err != nil {
		if errors.Is(err, billing.ErrSubscriptionNotFound) {
			return e.catalog.Default(), nil
		}
		return nil, err
	}
	return e.catalog.ByID(sub.PlanID)
}
