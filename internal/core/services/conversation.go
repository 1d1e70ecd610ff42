package services

import (
	"context"
	"sort"
	"time"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
	"github.com/freightdesk/loadboard-core/internal/core/ports/driven"
	"github.com/freightdesk/loadboard-core/internal/core/ports/driving"
)

// Ensure conversationService implements ConversationService
var _ driving.ConversationService = (*conversationService)(nil)

type conversationService struct {
	store driven.ConversationStore
	page  Pagination
	now   func() time.Time
}

// NewConversationService creates a new ConversationService
func NewConversationService(store driven.ConversationStore, page Pagination) driving.ConversationService {
	return &conversationService{store: store, page: page, now: time.Now}
}

// List filters the collection snapshot and returns the matches sorted by
// timestamp descending, sliced to the pagination window.
func (s *conversationService) List(ctx context.Context, req driving.ListConversationsRequest) ([]*domain.Conversation, error) {
	convs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Conversation, 0, len(convs))
	for _, c := range convs {
		if req.Filter.Matches(c) {
			matched = append(matched, c)
		}
	}

	// Timestamps are ISO-8601 strings, so lexicographic order is
	// chronological for same-shaped values
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp > matched[j].Timestamp
	})

	start, end := s.page.window(req.Limit, req.Offset, len(matched))
	return matched[start:end], nil
}

// Get retrieves a conversation by id
func (s *conversationService) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	return s.store.Get(ctx, id)
}

// Create validates and stores a new conversation. The timestamp defaults
// to now when absent, and the booking status is backfilled from the
// legacy agent-notes tag when the caller did not set it explicitly.
func (s *conversationService) Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	if err := conv.Validate(); err != nil {
		return nil, err
	}
	if conv.Timestamp == "" {
		conv.Timestamp = s.now().UTC().Format(time.RFC3339)
	}
	if conv.LoadStatus == domain.BookingUnknown {
		conv.LoadStatus = domain.BookingStatusFromNotes(conv.AgentNotes)
	}
	if err := s.store.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// Delete removes a conversation by id
func (s *conversationService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
