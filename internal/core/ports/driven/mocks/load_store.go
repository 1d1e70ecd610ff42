package mocks

import (
	"context"
	"sync"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
	"github.com/freightdesk/loadboard-core/internal/core/ports/driven"
)

// Ensure MockLoadStore implements LoadStore
var _ driven.LoadStore = (*MockLoadStore)(nil)

// MockLoadStore is an in-memory LoadStore for testing. It preserves
// insertion order, matching the flat-file adapter's behaviour.
type MockLoadStore struct {
	mu    sync.RWMutex
	loads []*domain.Load
}

// NewMockLoadStore creates a new MockLoadStore
func NewMockLoadStore() *MockLoadStore {
	return &MockLoadStore{}
}

func (m *MockLoadStore) List(ctx context.Context) ([]*domain.Load, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Load, len(m.loads))
	for i, l := range m.loads {
		cp := *l
		out[i] = &cp
	}
	return out, nil
}

func (m *MockLoadStore) Get(ctx context.Context, id string) (*domain.Load, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range m.loads {
		if l.LoadID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockLoadStore) Create(ctx context.Context, load *domain.Load) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.loads {
		if l.LoadID == load.LoadID {
			return domain.ErrAlreadyExists
		}
	}
	cp := *load
	m.loads = append(m.loads, &cp)
	return nil
}

func (m *MockLoadStore) Replace(ctx context.Context, load *domain.Load) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.loads {
		if l.LoadID == load.LoadID {
			cp := *load
			m.loads[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MockLoadStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.loads {
		if l.LoadID == id {
			m.loads = append(m.loads[:i], m.loads[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
