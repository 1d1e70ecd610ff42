package services

import (
	"context"
	"fmt"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
	"github.com/freightdesk/loadboard-core/internal/core/ports/driven"
	"github.com/freightdesk/loadboard-core/internal/core/ports/driving"
)

// Ensure loadService implements LoadService
var _ driving.LoadService = (*loadService)(nil)

// loadService is the query engine over the loads collection. It operates
// on a snapshot loaded fresh from the store per call and never holds a
// long-lived reference to the collection.
type loadService struct {
	store driven.LoadStore
	page  Pagination
}

// NewLoadService creates a new LoadService
func NewLoadService(store driven.LoadStore, page Pagination) driving.LoadService {
	return &loadService{store: store, page: page}
}

// List evaluates every supplied predicate as an implicit AND over the
// collection snapshot, preserving stored order, then slices the window.
// A caller that omits the status filter sees only available loads.
func (s *loadService) List(ctx context.Context, req driving.ListLoadsRequest) ([]*domain.Load, error) {
	if err := req.Filter.Validate(); err != nil {
		return nil, err
	}

	loads, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	filter := req.Filter
	if filter.Status == nil {
		def := domain.StatusAvailable
		filter.Status = &def
	}

	matched := make([]*domain.Load, 0, len(loads))
	for _, l := range loads {
		ok, err := filter.Matches(l)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, l)
		}
	}

	start, end := s.page.window(req.Limit, req.Offset, len(matched))
	return matched[start:end], nil
}

// Get retrieves a load by id
func (s *loadService) Get(ctx context.Context, id string) (*domain.Load, error) {
	return s.store.Get(ctx, id)
}

// Create validates and stores a new load. Duplicate ids are rejected, not
// overwritten; status defaults to available.
func (s *loadService) Create(ctx context.Context, load *domain.Load) (*domain.Load, error) {
	if err := load.Validate(); err != nil {
		return nil, err
	}
	if load.Status == "" {
		load.Status = domain.StatusAvailable
	}
	if err := s.store.Create(ctx, load); err != nil {
		return nil, err
	}
	return load, nil
}

// Replace overwrites an existing load in full. There are no partial
// updates; fields absent from the replacement are gone.
func (s *loadService) Replace(ctx context.Context, id string, load *domain.Load) (*domain.Load, error) {
	if load.LoadID == "" {
		load.LoadID = id
	}
	if load.LoadID != id {
		return nil, fmt.Errorf("%w: body load_id %q does not match path id %q", domain.ErrInvalidInput, load.LoadID, id)
	}
	if err := load.Validate(); err != nil {
		return nil, err
	}
	if load.Status == "" {
		load.Status = domain.StatusAvailable
	}
	if err := s.store.Replace(ctx, load); err != nil {
		return nil, err
	}
	return load, nil
}

// Delete removes a load by id
func (s *loadService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
