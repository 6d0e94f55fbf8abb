// Package category provides the read-side use case for the category listing.
package category

import (
	"context"
	"fmt"

	"news-dashboard/internal/observability/metrics"
	"news-dashboard/internal/repository"
	"news-dashboard/pkg/cache"
)

const listKey = "categories"

// Service provides category read use cases. Cache is optional; a nil cache
// sends every call straight to the repository.
type Service struct {
	Repo  repository.CategoryRepository
	Cache *cache.TTLStore
}

// List retrieves all categories with their article counts, ordered by name.
// The whole listing is cached as a single entry.
func (s *Service) List(ctx context.Context) ([]repository.CategoryWithCount, error) {
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(listKey); ok {
			metrics.RecordCacheRequest("categories", true)
			return cached.([]repository.CategoryWithCount), nil
		}
		metrics.RecordCacheRequest("categories", false)
	}

	categories, err := s.Repo.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if s.Cache != nil {
		s.Cache.Set(listKey, categories)
	}
	return categories, nil
}
