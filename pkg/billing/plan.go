package billing

import (
	"context"
	"fmt"
)

// Plan describes a subscription tier. Limits maps each resource to a
// cap; Unlimited (-1) removes the cap and 0 forbids the resource
// entirely. A resource absent from the map is also forbidden.
type Plan struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	PriceIDMonthly string             `json:"price_id_monthly"`
	PriceIDYearly  string             `json:"price_id_yearly"`
	Limits         map[Resource]int64 `json:"limits"`
	Default        bool               `json:"default"`
}

// Limit returns the cap for a resource, treating absent entries as 0.
func (p *Plan) Limit(r Resource) int64 {
	return p.Limits[r]
}

// Source loads plan definitions. Implementations may read config
// files, a database, or a hardcoded catalog.
type Source interface {
	Load(ctx context.Context) ([]Plan, error)
}

// StaticSource serves a fixed plan list.
type StaticSource []Plan

func (s StaticSource) Load(ctx context.Context) ([]Plan, error) {
	return s, nil
}

// Catalog is an immutable, validated set of plans with lookup by plan
// id and by provider price id.
type Catalog struct {
	byID      map[string]*Plan
	byPriceID map[string]*Plan
	def       *Plan
}

// NewCatalog validates and indexes the plans from a source. It fails
// when no plan or more than one plan is marked default, when a limit
// is below Unlimited, or when price ids collide.
func NewCatalog(ctx context.Context, src Source) (*Catalog, error) {
	plans, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, fmt.Errorf("%w: no plans defined", ErrInvalidPlanConfiguration)
	}

	c := &Catalog{
		byID:      make(map[string]*Plan, len(plans)),
		byPriceID: make(map[string]*Plan),
	}
	for i := range plans {
		p := &plans[i]
		if p.ID == "" {
			return nil, fmt.Errorf("%w: plan with empty id", ErrInvalidPlanConfiguration)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate plan id %q", ErrInvalidPlanConfiguration, p.ID)
		}
		for res, limit := range p.Limits {
			if limit < Unlimited {
				return nil, fmt.Errorf("%w: plan %q limit for %s is %d",
					ErrInvalidPlanConfiguration, p.ID, res, limit)
			}
		}
		for _, priceID := range []string{p.PriceIDMonthly, p.PriceIDYearly} {
			if priceID == "" {
				continue
			}
			if _, dup := c.byPriceID[priceID]; dup {
				return nil, fmt.Errorf("%w: duplicate price id %q", ErrInvalidPlanConfiguration, priceID)
			}
			c.byPriceID[priceID] = p
		}
		if p.Default {
			if c.def != nil {
				return nil, fmt.Errorf("%w: multiple default plans", ErrInvalidPlanConfiguration)
			}
			c.def = p
		}
		c.byID[p.ID] = p
	}
	if c.def == nil {
		return nil, fmt.Errorf("%w: no default plan", ErrInvalidPlanConfiguration)
	}
	return c, nil
}

// ByID returns the plan with the given id.
func (c *Catalog) ByID(id string) (*Plan, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPlanNotFound, id)
	}
	return p, nil
}

// ByPriceID returns the plan selling the given provider price,
// checking both billing intervals.
func (c *Catalog) ByPriceID(priceID string) (*Plan, error) {
	p, ok := c.byPriceID[priceID]
	if !ok {
		return nil, fmt.Errorf("%w: price %q", ErrPlanNotFound, priceID)
	}
	return p, nil
}

// Default returns the plan tenants fall back to without a subscription.
func (c *Catalog) Default() *Plan {
	return c.def
}
