package jsonfile

import (
	"context"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
	"github.com/freightdesk/loadboard-core/internal/core/ports/driven"
)

// Ensure ConversationStore implements the driven port
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore persists conversations in a flat JSON file
type ConversationStore struct {
	col *collection[domain.Conversation]
}

// NewConversationStore creates a ConversationStore backed by the given file path
func NewConversationStore(path string) *ConversationStore {
	return &ConversationStore{col: newCollection[domain.Conversation](path)}
}

func (s *ConversationStore) List(ctx context.Context) ([]*domain.Conversation, error) {
	items, err := s.col.read()
	if err != nil {
		return nil, err
	}
	convs := make([]*domain.Conversation, len(items))
	for i := range items {
		convs[i] = &items[i]
	}
	return convs, nil
}

func (s *ConversationStore) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	items, err := s.col.read()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ConversationID == id {
			return &items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *ConversationStore) Create(ctx context.Context, conv *domain.Conversation) error {
	return s.col.update(func(items []domain.Conversation) ([]domain.Conversation, error) {
		for i := range items {
			if items[i].ConversationID == conv.ConversationID {
				return nil, domain.ErrAlreadyExists
			}
		}
		return append(items, *conv), nil
	})
}

// Upsert fully replaces the record with the same id or appends a new one.
// Replacement is whole-record: fields present only on the old record are
// lost by design.
func (s *ConversationStore) Upsert(ctx context.Context, conv *domain.Conversation) (bool, error) {
	created := false
	err := s.col.update(func(items []domain.Conversation) ([]domain.Conversation, error) {
		for i := range items {
			if items[i].ConversationID == conv.ConversationID {
				items[i] = *conv
				return items, nil
			}
		}
		created = true
		return append(items, *conv), nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (s *ConversationStore) Delete(ctx context.Context, id string) error {
	return s.col.update(func(items []domain.Conversation) ([]domain.Conversation, error) {
		for i := range items {
			if items[i].ConversationID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
