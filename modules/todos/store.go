// Package todos is a minimal tenant-scoped resource used to exercise
// the authorization pipeline and plan limits end to end.
package todos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Todo is one task inside a workspace.
type Todo struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrTodoNotFound is returned when no todo matches the lookup within
// the tenant.
var ErrTodoNotFound = errors.New("todo not found")

// Store defines the persistence operations for todos. Every operation
// is scoped by tenant id; there is no cross-tenant access path.
type Store interface {
	Create(ctx context.Context, t *Todo) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Todo, error)
	Toggle(ctx context.Context, tenantID, id uuid.UUID) (*Todo, error)
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
