package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"news-dashboard/internal/domain/entity"
	"news-dashboard/internal/repository"
)

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepo{db: db}
}

// GetOrCreate resolves a category by slug, inserting it when absent. The
// unique constraint on slug arbitrates concurrent inserts: when the INSERT
// conflicts, RETURNING yields no rows and the fallback SELECT fetches the
// row the winner created.
func (repo *CategoryRepo) GetOrCreate(ctx context.Context, name, slug string) (*entity.Category, error) {
	const insertQuery = `
INSERT INTO categories (name, slug)
VALUES ($1, $2)
ON CONFLICT (slug) DO NOTHING
RETURNING id, name, slug`

	var category entity.Category
	err := repo.db.QueryRowContext(ctx, insertQuery, name, slug).
		Scan(&category.ID, &category.Name, &category.Slug)
	if err == nil {
		return &category, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("GetOrCreate: insert: %w", err)
	}

	const selectQuery = `SELECT id, name, slug FROM categories WHERE slug = $1`

	err = repo.db.QueryRowContext(ctx, selectQuery, slug).
		Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		return nil, fmt.Errorf("GetOrCreate: select: %w", err)
	}
	return &category, nil
}

// ListWithCounts retrieves all categories with their article counts,
// ordered by name.
func (repo *CategoryRepo) ListWithCounts(ctx context.Context) ([]repository.CategoryWithCount, error) {
	const query = `
SELECT c.id, c.name, c.slug, COUNT(a.id) AS article_count
FROM categories c
LEFT JOIN articles a ON a.category_id = c.id
GROUP BY c.id, c.name, c.slug
ORDER BY c.name`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListWithCounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.CategoryWithCount, 0, 16)
	for rows.Next() {
		var category entity.Category
		var count int64
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &count); err != nil {
			return nil, fmt.Errorf("ListWithCounts: Scan: %w", err)
		}
		result = append(result, repository.CategoryWithCount{
			Category:     &category,
			ArticleCount: count,
		})
	}
	return result, rows.Err()
}
