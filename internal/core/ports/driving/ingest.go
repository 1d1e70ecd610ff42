package driving

import (
	"context"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
)

// Ingest outcome labels
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// IngestResult reports what the normalizer did with a webhook payload
type IngestResult struct {
	ConversationID string `json:"conversation_id"`
	Action         string `json:"action"`
}

// IngestService normalizes webhook extraction payloads into conversation
// records, deterministically and idempotently, with upsert-by-derived-id.
type IngestService interface {
	Ingest(ctx context.Context, payload domain.ExtractionPayload) (*IngestResult, error)
}
