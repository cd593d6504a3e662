package todos

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-memory maps.
type MemoryStore struct {
	mu       sync.RWMutex
	byTenant map[uuid.UUID][]*Todo
}

// NewMemoryStore creates a new in-memory todo store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byTenant: make(map[uuid.UUID][]*Todo)}
}

func (m *MemoryStore) Create(ctx context.Context, t *Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *t
	m.byTenant[t.TenantID] = append(m.byTenant[t.TenantID], &cp)
	return nil
}

func (m *MemoryStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := m.byTenant[tenantID]
	out := make([]Todo, 0, len(items))
	for _, t := range items {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) Toggle(ctx context.Context, tenantID, id uuid.UUID) (*Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.byTenant[tenantID] {
		if t.ID == id {
			t.Done = !t.Done
			cp := *t
			return &cp, nil
		}
	}
	return nil, ErrTodoNotFound
}

func (m *MemoryStore) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.byTenant[tenantID])), nil
}
