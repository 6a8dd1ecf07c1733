// Package news provides the read-side use case for harvested news items.
package news

import (
	"context"
	"fmt"

	"ainews-backend/internal/domain/entity"
	"ainews-backend/internal/repository"
)

// Service provides read access to stored news items.
// It delegates persistence to the repository.
type Service struct {
	Repo repository.ItemRepository
}

// List retrieves all stored news items, newest first.
// Returns an error if the repository operation fails.
func (s *Service) List(ctx context.Context) ([]*entity.NewsItem, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news items: %w", err)
	}
	return items, nil
}
