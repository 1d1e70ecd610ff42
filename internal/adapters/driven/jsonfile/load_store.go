package jsonfile

import (
	"context"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
	"github.com/freightdesk/loadboard-core/internal/core/ports/driven"
)

// Ensure LoadStore implements the driven port
var _ driven.LoadStore = (*LoadStore)(nil)

// LoadStore persists loads in a flat JSON file
type LoadStore struct {
	col *collection[domain.Load]
}

// NewLoadStore creates a LoadStore backed by the given file path
func NewLoadStore(path string) *LoadStore {
	return &LoadStore{col: newCollection[domain.Load](path)}
}

func (s *LoadStore) List(ctx context.Context) ([]*domain.Load, error) {
	items, err := s.col.read()
	if err != nil {
		return nil, err
	}
	loads := make([]*domain.Load, len(items))
	for i := range items {
		loads[i] = &items[i]
	}
	return loads, nil
}

func (s *LoadStore) Get(ctx context.Context, id string) (*domain.Load, error) {
	items, err := s.col.read()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].LoadID == id {
			return &items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *LoadStore) Create(ctx context.Context, load *domain.Load) error {
	return s.col.update(func(items []domain.Load) ([]domain.Load, error) {
		for i := range items {
			if items[i].LoadID == load.LoadID {
				return nil, domain.ErrAlreadyExists
			}
		}
		return append(items, *load), nil
	})
}

func (s *LoadStore) Replace(ctx context.Context, load *domain.Load) error {
	return s.col.update(func(items []domain.Load) ([]domain.Load, error) {
		for i := range items {
			if items[i].LoadID == load.LoadID {
				items[i] = *load
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

func (s *LoadStore) Delete(ctx context.Context, id string) error {
	return s.col.update(func(items []domain.Load) ([]domain.Load, error) {
		for i := range items {
			if items[i].LoadID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
