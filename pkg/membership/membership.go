package membership

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mkoval-dev/tenantcore/pkg/tenant"
)

// Membership links a user to a tenant with a role.
type Membership struct {
	UserID    uuid.UUID `json:"user_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TenantMembership is a membership joined with its tenant, used for
// listing the workspaces a user belongs to.
type TenantMembership struct {
	Tenant   tenant.Tenant `json:"tenant"`
	Role     Role          `json:"role"`
	JoinedAt time.Time     `json:"joined_at"`
}

// Store defines the persistence operations for tenant memberships.
type Store interface {
	// Get returns the membership for (userID, tenantID).
	// Returns ErrNotMember if the user does not belong to the tenant.
	Get(ctx context.Context, userID, tenantID uuid.UUID) (*Membership, error)

	// ListByUser returns all memberships of a user joined with their
	// tenants, ordered by join time ascending. The first entry is the
	// fallback workspace when a session has no active tenant.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]TenantMembership, error)

	// Create persists a new membership. Returns ErrAlreadyMember if the
	// user already belongs to the tenant.
	Create(ctx context.Context, m *Membership) error

	// CountByRole returns the number of members holding the given role
	// in a tenant. Mutation layers use it to keep at least one owner.
	CountByRole(ctx context.Context, tenantID uuid.UUID, role Role) (int, error)
}
