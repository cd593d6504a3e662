package membership

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mkoval-dev/tenantcore/pkg/tenant"
)

type memberKey struct {
	userID   uuid.UUID
	tenantID uuid.UUID
}

// MemoryStore implements Store using in-memory maps. It keeps its own
// tenant snapshots so ListByUser can return joined rows without a
// second store.
type MemoryStore struct {
	mu      sync.RWMutex
	members map[memberKey]*Membership
	tenants map[uuid.UUID]tenant.Tenant
}

// NewMemoryStore creates a new in-memory membership store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		members: make(map[memberKey]*Membership),
		tenants: make(map[uuid.UUID]tenant.Tenant),
	}
}

// AddTenant registers a tenant snapshot for joined listings.
func (m *MemoryStore) AddTenant(t tenant.Tenant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants[t.ID] = t
}

func (m *MemoryStore) Get(ctx context.Context, userID, tenantID uuid.UUID) (*Membership, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mb, ok := m.members[memberKey{userID, tenantID}]
	if !ok {
		return nil, ErrNotMember
	}
	cp := *mb
	return &cp, nil
}

func (m *MemoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]TenantMembership, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []TenantMembership
	for key, mb := range m.members {
		if key.userID != userID {
			continue
		}
		out = append(out, TenantMembership{
			Tenant:   m.tenants[key.tenantID],
			Role:     mb.Role,
			JoinedAt: mb.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out, nil
}

func (m *MemoryStore) Create(ctx context.Context, mb *Membership) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memberKey{mb.UserID, mb.TenantID}
	if _, exists := m.members[key]; exists {
		return ErrAlreadyMember
	}
	cp := *mb
	m.members[key] = &cp
	return nil
}

func (m *MemoryStore) CountByRole(ctx context.Context, tenantID uuid.UUID, role Role) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for key, mb := range m.members {
		if key.tenantID == tenantID && mb.Role == role {
			count++
		}
	}
	return count, nil
}
