package tenant

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-memory maps. Intended for tests
// and single-process development setups.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Tenant
	bySlug map[string]uuid.UUID
}

// NewMemoryStore creates a new in-memory tenant store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[uuid.UUID]*Tenant),
		bySlug: make(map[string]uuid.UUID),
	}
}

func (m *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.byID[id]
	if !ok {
		return nil, ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MemoryStore) GetBySlug(ctx context.Context, slug string) (*Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, ErrTenantNotFound
	}
	cp := *m.byID[id]
	return &cp, nil
}

func (m *MemoryStore) Create(ctx context.Context, t *Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.bySlug[t.Slug]; exists {
		return ErrSlugTaken
	}

	cp := *t
	m.byID[t.ID] = &cp
	m.bySlug[t.Slug] = t.ID
	return nil
}
