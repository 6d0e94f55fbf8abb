package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"news-dashboard/internal/domain/entity"
	"news-dashboard/internal/repository"
)

type ArticleRepo struct {
	db           *sql.DB
	queryBuilder *ArticleQueryBuilder
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:           db,
		queryBuilder: NewArticleQueryBuilder(),
	}
}

// listColumns is the projection shared by ListFiltered and GetWithRefs.
// The content column is appended only for GetWithRefs; list responses
// deliberately exclude it to keep payloads small.
const listColumns = `
a.id, a.source_id, a.category_id, a.source_name, a.author, a.title,
a.description, a.url, a.url_to_image, a.published_at, a.country,
a.created_at, a.updated_at,
c.name AS category_name,
s.id, s.source_id, s.name, s.description, s.url, s.country, s.language`

const listJoins = `
FROM articles a
LEFT JOIN categories c ON a.category_id = c.id
LEFT JOIN sources    s ON a.source_id   = s.id`

// scanArticleRow scans one joined row into an ArticleWithRefs, handling the
// nullable category/source side of the LEFT JOINs. extra receives any
// trailing columns (the content field for detail queries).
func scanArticleRow(scan func(dest ...any) error, extra ...any) (repository.ArticleWithRefs, error) {
	var (
		article      entity.Article
		sourceID     sql.NullInt64
		categoryID   sql.NullInt64
		categoryName sql.NullString

		srcID       sql.NullInt64
		srcSourceID sql.NullString
		srcName     sql.NullString
		srcDesc     sql.NullString
		srcURL      sql.NullString
		srcCountry  sql.NullString
		srcLang     sql.NullString
	)

	dest := []any{
		&article.ID, &sourceID, &categoryID, &article.SourceName,
		&article.Author, &article.Title, &article.Description, &article.URL,
		&article.URLToImage, &article.PublishedAt, &article.Country,
		&article.CreatedAt, &article.UpdatedAt,
		&categoryName,
		&srcID, &srcSourceID, &srcName, &srcDesc, &srcURL, &srcCountry, &srcLang,
	}
	dest = append(dest, extra...)

	if err := scan(dest...); err != nil {
		return repository.ArticleWithRefs{}, err
	}

	if sourceID.Valid {
		article.SourceID = &sourceID.Int64
	}
	if categoryID.Valid {
		article.CategoryID = &categoryID.Int64
	}

	result := repository.ArticleWithRefs{
		Article:      &article,
		CategoryName: categoryName.String,
	}

	if srcID.Valid {
		result.Source = &entity.Source{
			ID:          srcID.Int64,
			SourceID:    srcSourceID.String,
			Name:        srcName.String,
			Description: srcDesc.String,
			URL:         srcURL.String,
			Country:     srcCountry.String,
			Language:    srcLang.String,
		}
	}

	return result, nil
}

// ListFiltered retrieves articles matching the filter with their related
// source and category eagerly joined, ordered by published_at DESC.
func (repo *ArticleRepo) ListFiltered(ctx context.Context, filter repository.ArticleFilter, offset, limit int) ([]repository.ArticleWithRefs, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filter)

	paramIndex := len(args) + 1
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
SELECT %s
%s
%s
ORDER BY a.published_at DESC
LIMIT $%d OFFSET $%d`, listColumns, listJoins, whereClause, paramIndex, paramIndex+1)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListFiltered: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.ArticleWithRefs, 0, limit)
	for rows.Next() {
		item, err := scanArticleRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("ListFiltered: Scan: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// CountFiltered returns the number of articles matching the filter.
func (repo *ArticleRepo) CountFiltered(ctx context.Context, filter repository.ArticleFilter) (int64, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filter)

	query := fmt.Sprintf(`SELECT COUNT(*) %s %s`, listJoins, whereClause)

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountFiltered: %w", err)
	}
	return count, nil
}

// GetWithRefs retrieves a single article by ID including the content field.
// Returns (nil, nil) when the article does not exist.
func (repo *ArticleRepo) GetWithRefs(ctx context.Context, id int64) (*repository.ArticleWithRefs, error) {
	query := fmt.Sprintf(`
SELECT %s, a.content
%s
WHERE a.id = $1
LIMIT 1`, listColumns, listJoins)

	var content string
	row := repo.db.QueryRowContext(ctx, query, id)
	item, err := scanArticleRow(row.Scan, &content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetWithRefs: %w", err)
	}
	item.Article.Content = content
	return &item, nil
}

// GetOrCreate inserts the article keyed on its unique URL. The unique
// constraint is the final arbiter for concurrent upserts of the same URL:
// ON CONFLICT DO NOTHING turns a uniqueness race into a zero-row insert,
// which is reported as created=false, never as an error. Existing rows are
// never touched (first-write-wins).
func (repo *ArticleRepo) GetOrCreate(ctx context.Context, article *entity.Article) (bool, error) {
	const query = `
INSERT INTO articles
       (source_id, category_id, source_name, author, title, description,
        url, url_to_image, published_at, content, country, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (url) DO NOTHING`

	res, err := repo.db.ExecContext(ctx, query,
		article.SourceID, article.CategoryID, article.SourceName,
		article.Author, article.Title, article.Description,
		article.URL, article.URLToImage, article.PublishedAt,
		article.Content, article.Country, article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("GetOrCreate: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("GetOrCreate: RowsAffected: %w", err)
	}
	return n == 1, nil
}
