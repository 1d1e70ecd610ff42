package driven

import (
	"context"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
)

// LoadStore handles load persistence (flat JSON file).
// List returns a fresh snapshot per call; mutations rewrite the whole
// collection under an exclusive per-collection lock.
type LoadStore interface {
	// List retrieves the full collection in stored order
	List(ctx context.Context) ([]*domain.Load, error)

	// Get retrieves a load by id, ErrNotFound if absent
	Get(ctx context.Context, id string) (*domain.Load, error)

	// Create appends a load, ErrAlreadyExists on duplicate id
	Create(ctx context.Context, load *domain.Load) error

	// Replace overwrites the load with the same id in full,
	// ErrNotFound if absent
	Replace(ctx context.Context, load *domain.Load) error

	// Delete removes a load by id, ErrNotFound if absent
	Delete(ctx context.Context, id string) error
}
