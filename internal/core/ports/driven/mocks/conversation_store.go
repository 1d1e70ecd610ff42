package mocks

import (
	"context"
	"sync"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
	"github.com/freightdesk/loadboard-core/internal/core/ports/driven"
)

// Ensure MockConversationStore implements ConversationStore
var _ driven.ConversationStore = (*MockConversationStore)(nil)

// MockConversationStore is an in-memory ConversationStore for testing
type MockConversationStore struct {
	mu    sync.RWMutex
	convs []*domain.Conversation
}

// NewMockConversationStore creates a new MockConversationStore
func NewMockConversationStore() *MockConversationStore {
	return &MockConversationStore{}
}

func (m *MockConversationStore) List(ctx context.Context) ([]*domain.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Conversation, len(m.convs))
	for i, c := range m.convs {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

func (m *MockConversationStore) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.convs {
		if c.ConversationID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockConversationStore) Create(ctx context.Context, conv *domain.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.convs {
		if c.ConversationID == conv.ConversationID {
			return domain.ErrAlreadyExists
		}
	}
	cp := *conv
	m.convs = append(m.convs, &cp)
	return nil
}

func (m *MockConversationStore) Upsert(ctx context.Context, conv *domain.Conversation) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *conv
	for i, c := range m.convs {
		if c.ConversationID == conv.ConversationID {
			m.convs[i] = &cp
			return false, nil
		}
	}
	m.convs = append(m.convs, &cp)
	return true, nil
}

func (m *MockConversationStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.convs {
		if c.ConversationID == id {
			m.convs = append(m.convs[:i], m.convs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
