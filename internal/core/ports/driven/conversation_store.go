package driven

import (
	"context"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
)

// ConversationStore handles conversation persistence (flat JSON file)
type ConversationStore interface {
	// List retrieves the full collection in stored order
	List(ctx context.Context) ([]*domain.Conversation, error)

	// Get retrieves a conversation by id, ErrNotFound if absent
	Get(ctx context.Context, id string) (*domain.Conversation, error)

	// Create appends a conversation, ErrAlreadyExists on duplicate id
	Create(ctx context.Context, conv *domain.Conversation) error

	// Upsert creates the conversation or fully replaces the record with
	// the same id (last write wins, no field merge). Reports whether a
	// new record was created.
	Upsert(ctx context.Context, conv *domain.Conversation) (created bool, err error)

	// Delete removes a conversation by id, ErrNotFound if absent
	Delete(ctx context.Context, id string) error
}
