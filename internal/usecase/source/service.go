// Package source provides the read-side use case for the source listing.
package source

import (
	"context"
	"fmt"

	"news-dashboard/internal/observability/metrics"
	"news-dashboard/internal/repository"
	"news-dashboard/pkg/cache"
)

const listKey = "sources"

// Service provides source read use cases. Cache is optional; a nil cache
// sends every call straight to the repository.
type Service struct {
	Repo  repository.SourceRepository
	Cache *cache.TTLStore
}

// List retrieves all sources with their article counts, ordered by name.
// The whole listing is cached as a single entry.
func (s *Service) List(ctx context.Context) ([]repository.SourceWithCount, error) {
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(listKey); ok {
			metrics.RecordCacheRequest("sources", true)
			return cached.([]repository.SourceWithCount), nil
		}
		metrics.RecordCacheRequest("sources", false)
	}

	sources, err := s.Repo.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	if s.Cache != nil {
		s.Cache.Set(listKey, sources)
	}
	return sources, nil
}
