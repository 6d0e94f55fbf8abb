package repository

import (
	"context"

	"news-dashboard/internal/domain/entity"
)

// SourceWithCount pairs a source with the number of articles that reference
// it, for the source listing endpoint.
type SourceWithCount struct {
	Source       *entity.Source
	ArticleCount int64
}

type SourceRepository interface {
	// GetOrCreate resolves a source by its external identifier, creating it
	// with the given fields when absent. Like the category variant this is
	// a single insert-or-fetch primitive keyed on the unique source_id
	// constraint; fields of an existing row are never updated.
	GetOrCreate(ctx context.Context, source *entity.Source) (*entity.Source, error)
	// ListWithCounts retrieves all sources with their article counts,
	// ordered by name.
	ListWithCounts(ctx context.Context) ([]SourceWithCount, error)
}
