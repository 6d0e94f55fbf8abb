package postgres

import (
	"fmt"
	"strings"

	"news-dashboard/internal/repository"
)

// ArticleQueryBuilder builds WHERE clauses for filtered article queries.
// It centralizes the filter SQL so the list and count queries cannot drift
// apart. The queries it serves always join sources as "s" and categories
// as "c" (LEFT JOIN, both references are nullable).
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause constructs a WHERE clause and its positional args from
// the filter. Returns ("", nil) when no filter is set.
//
// Filter semantics:
//   - CategorySlug: exact match on categories.slug
//   - SourceID: exact match on sources.source_id (the external identifier)
//   - Country: case-insensitive exact match
//   - Search: ILIKE substring over title OR description
func (qb *ArticleQueryBuilder) BuildWhereClause(filter repository.ArticleFilter) (string, []any) {
	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", len(args)))
	}

	if filter.SourceID != "" {
		args = append(args, filter.SourceID)
		conditions = append(conditions, fmt.Sprintf("s.source_id = $%d", len(args)))
	}

	if filter.Country != "" {
		args = append(args, filter.Country)
		conditions = append(conditions, fmt.Sprintf("LOWER(a.country) = LOWER($%d)", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(a.title ILIKE $%d OR a.description ILIKE $%d)", len(args), len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
