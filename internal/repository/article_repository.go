package repository

import (
	"context"

	"news-dashboard/internal/domain/entity"
)

// ArticleFilter contains the optional filters supported by article listing.
// Zero-value fields are ignored.
type ArticleFilter struct {
	CategorySlug string // exact match on the category slug
	SourceID     string // exact match on the external source identifier
	Country      string // case-insensitive exact match
	Search       string // substring match over title OR description
}

// ArticleWithRefs is an article together with its eagerly loaded category
// name and source record, so list/detail responses never need per-row
// lookups. Source is nil when the article has no resolvable source and
// CategoryName is "" when the article was ingested without category context.
type ArticleWithRefs struct {
	Article      *entity.Article
	CategoryName string
	Source       *entity.Source
}

type ArticleRepository interface {
	// ListFiltered retrieves articles matching the filter, ordered by
	// published_at DESC, using LIMIT/OFFSET pagination. The heavy content
	// column is excluded from list projections.
	ListFiltered(ctx context.Context, filter ArticleFilter, offset, limit int) ([]ArticleWithRefs, error)
	// CountFiltered returns the number of articles matching the filter,
	// for pagination metadata.
	CountFiltered(ctx context.Context, filter ArticleFilter) (int64, error)
	// GetWithRefs retrieves a single article by ID including the content
	// field and its related source/category. Returns (nil, nil) when the
	// article does not exist.
	GetWithRefs(ctx context.Context, id int64) (*ArticleWithRefs, error)
	// GetOrCreate atomically inserts the article keyed on its unique URL.
	// If a row with that URL already exists the call is a successful no-op
	// and created is false; existing fields are never updated
	// (first-write-wins). Uniqueness races at the storage layer must
	// resolve to created=false, never to an error.
	GetOrCreate(ctx context.Context, article *entity.Article) (created bool, err error)
}
