// Package blob stores tenant-scoped binary objects, such as workspace
// data exports and invoice documents. Keys are always namespaced by
// tenant so one workspace can never read another's objects.
package blob

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Storage reads and writes tenant-scoped objects.
type Storage interface {
	// Put stores an object under the tenant's namespace.
	Put(ctx context.Context, tenantID uuid.UUID, key string, data []byte, contentType string) error

	// Get retrieves an object. Returns ErrNotFound if absent.
	Get(ctx context.Context, tenantID uuid.UUID, key string) ([]byte, error)

	// Delete removes an object. Deleting an absent key is not an error.
	Delete(ctx context.Context, tenantID uuid.UUID, key string) error
}

// objectKey builds the namespaced storage key.
func objectKey(tenantID uuid.UUID, key string) string {
	return fmt.Sprintf("tenants/%s/%s", tenantID, key)
}
