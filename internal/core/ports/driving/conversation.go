package driving

import (
	"context"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
)

// ListConversationsRequest carries the optional filters and the pagination
// window for a conversation listing.
type ListConversationsRequest struct {
	Filter domain.ConversationFilter
	Limit  *int
	Offset *int
}

// ConversationService lists and mutates conversation records.
// Listings are sorted by timestamp descending before pagination.
type ConversationService interface {
	// List returns the conversations matching every supplied filter,
	// newest first, sliced to the pagination window
	List(ctx context.Context, req ListConversationsRequest) ([]*domain.Conversation, error)

	// Get retrieves a conversation by id
	Get(ctx context.Context, id string) (*domain.Conversation, error)

	// Create validates and stores a new conversation; duplicate ids are
	// rejected and the timestamp is defaulted when absent
	Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)

	// Delete removes a conversation by id
	Delete(ctx context.Context, id string) error
}
