// Package article provides the read-side use cases for articles: filtered,
// paginated listing and single-article detail, both served through a TTL
// cache so repeated dashboard reads skip the database.
package article

import (
	"context"
	"fmt"

	"news-dashboard/internal/common/pagination"
	"news-dashboard/internal/observability/metrics"
	"news-dashboard/internal/repository"
	"news-dashboard/pkg/cache"
)

// Service provides article read use cases. Cache is optional; a nil cache
// sends every call straight to the repository.
type Service struct {
	Repo  repository.ArticleRepository
	Cache *cache.TTLStore
}

// PaginatedResult is one page of articles plus its pagination metadata.
type PaginatedResult struct {
	Data       []repository.ArticleWithRefs
	Pagination pagination.Metadata
}

// ListFiltered retrieves one page of articles matching the filter, newest
// first. Results are cached keyed on the full filter and page coordinates,
// so any change in either is a distinct cache entry. Entries are never
// invalidated on write; they simply age out.
func (s *Service) ListFiltered(ctx context.Context, filter repository.ArticleFilter, params pagination.Params) (*PaginatedResult, error) {
	key := listCacheKey(filter, params)
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(key); ok {
			metrics.RecordCacheRequest("articles", true)
			return cached.(*PaginatedResult), nil
		}
		metrics.RecordCacheRequest("articles", false)
	}

	total, err := s.Repo.CountFiltered(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	offset := pagination.CalculateOffset(params.Page, params.Limit)
	articles, err := s.Repo.ListFiltered(ctx, filter, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	result := &PaginatedResult{
		Data: articles,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}

	if s.Cache != nil {
		s.Cache.Set(key, result)
	}
	return result, nil
}

// Get retrieves a single article by ID, including its content and related
// records. Returns (nil, nil) when the article does not exist; absence is
// not cached.
func (s *Service) Get(ctx context.Context, id int64) (*repository.ArticleWithRefs, error) {
	key := fmt.Sprintf("article:%d", id)
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(key); ok {
			metrics.RecordCacheRequest("article", true)
			return cached.(*repository.ArticleWithRefs), nil
		}
		metrics.RecordCacheRequest("article", false)
	}

	found, err := s.Repo.GetWithRefs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	if found == nil {
		return nil, nil
	}

	if s.Cache != nil {
		s.Cache.Set(key, found)
	}
	return found, nil
}

func listCacheKey(filter repository.ArticleFilter, params pagination.Params) string {
	return fmt.Sprintf("articles:c=%s:s=%s:n=%s:q=%s:p=%d:l=%d",
		filter.CategorySlug, filter.SourceID, filter.Country, filter.Search,
		params.Page, params.Limit)
}
