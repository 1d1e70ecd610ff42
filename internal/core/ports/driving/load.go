package driving

import (
	"context"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
)

// ListLoadsRequest carries the optional filters and the pagination window
// for a load listing.
//
// Status semantics are part of the contract: a nil Filter.Status means the
// caller omitted the parameter and the service applies the default
// status=available view; a pointer to the empty string disables status
// filtering entirely.
type ListLoadsRequest struct {
	Filter domain.LoadFilter
	Limit  *int
	Offset *int
}

// LoadService lists and mutates freight loads
type LoadService interface {
	// List returns the loads matching every supplied filter, in stored
	// order, sliced to the pagination window
	List(ctx context.Context, req ListLoadsRequest) ([]*domain.Load, error)

	// Get retrieves a load by id
	Get(ctx context.Context, id string) (*domain.Load, error)

	// Create validates and stores a new load; duplicate ids are rejected
	Create(ctx context.Context, load *domain.Load) (*domain.Load, error)

	// Replace overwrites an existing load in full (no partial update)
	Replace(ctx context.Context, id string, load *domain.Load) (*domain.Load, error)

	// Delete removes a load by id
	Delete(ctx context.Context, id string) error
}
