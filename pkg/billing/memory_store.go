package billing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-memory maps.
type MemoryStore struct {
	mu         sync.RWMutex
	byTenant   map[uuid.UUID]*Subscription
	byProvider map[string]uuid.UUID
}

// NewMemoryStore creates a new in-memory subscription store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byTenant:   make(map[uuid.UUID]*Subscription),
		byProvider: make(map[string]uuid.UUID),
	}
}

func (m *MemoryStore) Get(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.byTenant[tenantID]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) GetByProviderID(ctx context.Context, providerSubID string) (*Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tenantID, ok := m.byProvider[providerSubID]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	cp := *m.byTenant[tenantID]
	return &cp, nil
}

func (m *MemoryStore) Save(ctx context.Context, s *Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *s
	now := time.Now()
	if prev, ok := m.byTenant[s.TenantID]; ok {
		cp.CreatedAt = prev.CreatedAt
		if prev.ProviderSubID != "" {
			delete(m.byProvider, prev.ProviderSubID)
		}
	} else if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now

	m.byTenant[s.TenantID] = &cp
	if cp.ProviderSubID != "" {
		m.byProvider[cp.ProviderSubID] = s.TenantID
	}
	return nil
}
