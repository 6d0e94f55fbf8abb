package repository

import (
	"context"

	"news-dashboard/internal/domain/entity"
)

// CategoryWithCount pairs a category with the number of articles that
// reference it, for the category listing endpoint.
type CategoryWithCount struct {
	Category     *entity.Category
	ArticleCount int64
}

type CategoryRepository interface {
	// GetOrCreate resolves a category by its slug, creating it with the
	// given display name when absent. The insert-or-fetch is a single
	// transactional primitive relying on the unique constraint on slug;
	// concurrent callers converge on the same row.
	GetOrCreate(ctx context.Context, name, slug string) (*entity.Category, error)
	// ListWithCounts retrieves all categories with their article counts,
	// ordered by name.
	ListWithCounts(ctx context.Context) ([]CategoryWithCount, error)
}
