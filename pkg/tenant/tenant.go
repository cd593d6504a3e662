package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant is an isolated organizational workspace, the unit of data
// partitioning. Every tenant-scoped resource carries the tenant id and no
// cross-tenant join is permitted at the data-access layer.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Store loads tenant records from a data source.
type Store interface {
	// GetByID retrieves a tenant by its id.
	// Returns ErrTenantNotFound if no tenant matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// GetBySlug retrieves a tenant by its unique slug.
	// Returns ErrTenantNotFound if no tenant matches.
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)

	// Create persists a new tenant.
	Create(ctx context.Context, t *Tenant) error
}
