package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"news-dashboard/internal/domain/entity"
	"news-dashboard/internal/repository"
)

type SourceRepo struct {
	db *sql.DB
}

func NewSourceRepo(db *sql.DB) repository.SourceRepository {
	return &SourceRepo{db: db}
}

const sourceColumns = `id, source_id, name, description, url, country, language`

// GetOrCreate resolves a source by its external identifier, inserting it
// when absent. Same shape as the category variant: the unique constraint on
// source_id arbitrates the race, and a conflicting INSERT falls back to
// selecting the existing row. Fields of an existing row are never updated.
func (repo *SourceRepo) GetOrCreate(ctx context.Context, source *entity.Source) (*entity.Source, error) {
	const insertQuery = `
INSERT INTO sources (source_id, name, description, url, country, language)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (source_id) DO NOTHING
RETURNING ` + sourceColumns

	var stored entity.Source
	err := repo.db.QueryRowContext(ctx, insertQuery,
		source.SourceID, source.Name, source.Description,
		source.URL, source.Country, source.Language,
	).Scan(
		&stored.ID, &stored.SourceID, &stored.Name, &stored.Description,
		&stored.URL, &stored.Country, &stored.Language,
	)
	if err == nil {
		return &stored, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("GetOrCreate: insert: %w", err)
	}

	const selectQuery = `SELECT ` + sourceColumns + ` FROM sources WHERE source_id = $1`

	err = repo.db.QueryRowContext(ctx, selectQuery, source.SourceID).Scan(
		&stored.ID, &stored.SourceID, &stored.Name, &stored.Description,
		&stored.URL, &stored.Country, &stored.Language,
	)
	if err != nil {
		return nil, fmt.Errorf("GetOrCreate: select: %w", err)
	}
	return &stored, nil
}

// ListWithCounts retrieves all sources with their article counts, ordered
// by name.
func (repo *SourceRepo) ListWithCounts(ctx context.Context) ([]repository.SourceWithCount, error) {
	const query = `
SELECT s.id, s.source_id, s.name, s.description, s.url, s.country, s.language,
       COUNT(a.id) AS article_count
FROM sources s
LEFT JOIN articles a ON a.source_id = s.id
GROUP BY s.id, s.source_id, s.name, s.description, s.url, s.country, s.language
ORDER BY s.name`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListWithCounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.SourceWithCount, 0, 32)
	for rows.Next() {
		var source entity.Source
		var count int64
		err := rows.Scan(
			&source.ID, &source.SourceID, &source.Name, &source.Description,
			&source.URL, &source.Country, &source.Language, &count,
		)
		if err != nil {
			return nil, fmt.Errorf("ListWithCounts: Scan: %w", err)
		}
		result = append(result, repository.SourceWithCount{
			Source:       &source,
			ArticleCount: count,
		})
	}
	return result, rows.Err()
}
