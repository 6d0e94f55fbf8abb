// Package ingest implements the article ingestion pipeline: fetching raw
// records from the upstream, normalizing them, and upserting them into the
// store with first-write-wins deduplication on the article URL.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"news-dashboard/internal/config"
	"news-dashboard/internal/domain/entity"
	"news-dashboard/internal/infra/newsapi"
	"news-dashboard/internal/observability/metrics"
	"news-dashboard/internal/repository"
	"news-dashboard/internal/resilience/retry"
)

// Fetcher is the upstream client contract consumed by the pipeline.
type Fetcher interface {
	FetchTopHeadlines(ctx context.Context, category, country string, pageSize int) ([]newsapi.RawArticle, error)
	FetchEverything(ctx context.Context, query string, pageSize int, sortBy string) ([]newsapi.RawArticle, error)
}

// Service orchestrates fetch, normalize and store for both the scheduled
// job and manual triggers.
type Service struct {
	Articles   repository.ArticleRepository
	Categories repository.CategoryRepository
	Sources    repository.SourceRepository
	Client     Fetcher
	Config     config.IngestConfig

	// RetryConfig governs the scheduled task retry. Overridable in tests;
	// production uses the fixed 3-attempt / 60s profile.
	RetryConfig retry.Config
}

// NewService creates an ingestion service with the production retry profile.
func NewService(
	articles repository.ArticleRepository,
	categories repository.CategoryRepository,
	sources repository.SourceRepository,
	client Fetcher,
	cfg config.IngestConfig,
) *Service {
	return &Service{
		Articles:    articles,
		Categories:  categories,
		Sources:     sources,
		Client:      client,
		Config:      cfg,
		RetryConfig: retry.IngestTaskConfig(),
	}
}

// Store normalizes and upserts a batch of raw records, returning the number
// of newly created articles.
//
// When a category label is supplied it is resolved once for the whole call,
// keyed by its slug, with a title-cased display name on creation. Each
// record is then processed independently: a single record's failure is
// logged and skipped, never aborting its siblings. Re-storing an identical
// batch creates zero new rows.
func (s *Service) Store(ctx context.Context, records []newsapi.RawArticle, category, country string) (int, error) {
	logger := slog.Default()

	var cat *entity.Category
	if category != "" {
		name := cases.Title(language.English).String(category)
		resolved, err := s.Categories.GetOrCreate(ctx, name, entity.Slugify(category))
		if err != nil {
			return 0, fmt.Errorf("Store: resolve category %q: %w", category, err)
		}
		cat = resolved
	}

	created := 0
	for _, raw := range records {
		normalized, err := Normalize(raw)
		if err != nil {
			metrics.RecordArticleDiscarded(discardReason(err))
			logger.Warn("discarding malformed record",
				slog.String("url", raw.URL),
				slog.Any("error", err))
			continue
		}

		if s.storeOne(ctx, normalized, cat, category, country) {
			created++
		}
	}

	return created, nil
}

// storeOne resolves the record's source and upserts the article. Returns
// true only when a new row was created. Failures are logged and absorbed.
func (s *Service) storeOne(ctx context.Context, record *NormalizedArticle, cat *entity.Category, category, country string) bool {
	logger := slog.Default()

	sourceName := record.Source.Name
	if sourceName == "" {
		sourceName = "Unknown"
	}
	src, err := s.Sources.GetOrCreate(ctx, &entity.Source{
		SourceID: entity.ResolveSourceID(record.Source.ID, record.Source.Name),
		Name:     sourceName,
		Country:  country,
	})
	if err != nil {
		logger.Warn("failed to resolve source",
			slog.String("url", record.URL),
			slog.String("source_name", record.Source.Name),
			slog.Any("error", err))
		return false
	}

	now := time.Now()
	article := &entity.Article{
		SourceID:    &src.ID,
		SourceName:  record.Source.Name,
		Author:      record.Author,
		Title:       record.Title,
		Description: record.Description,
		URL:         record.URL,
		URLToImage:  record.URLToImage,
		PublishedAt: record.PublishedAt,
		Content:     record.Content,
		Country:     country,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if cat != nil {
		article.CategoryID = &cat.ID
	}

	created, err := s.Articles.GetOrCreate(ctx, article)
	if err != nil {
		logger.Warn("failed to upsert article",
			slog.String("url", record.URL),
			slog.Any("error", err))
		return false
	}

	if created {
		metrics.RecordArticleIngested(category)
	} else {
		metrics.RecordArticleDuplicated(category)
	}
	return created
}

// FetchTopHeadlines fetches and stores current headlines for one
// category/country pair. Fetch errors surface directly to the caller.
func (s *Service) FetchTopHeadlines(ctx context.Context, category, country string) (int, error) {
	records, err := s.Client.FetchTopHeadlines(ctx, category, country, s.Config.PageSize)
	if err != nil {
		metrics.RecordFetchError("top_headlines", fetchErrorType(err))
		return 0, err
	}
	return s.Store(ctx, records, category, country)
}

// FetchEverything fetches and stores articles matching a keyword query.
// Results carry no category or country context.
func (s *Service) FetchEverything(ctx context.Context, query string) (int, error) {
	records, err := s.Client.FetchEverything(ctx, query, s.Config.PageSize, newsapi.DefaultSortBy)
	if err != nil {
		metrics.RecordFetchError("everything", fetchErrorType(err))
		return 0, err
	}
	return s.Store(ctx, records, "", "")
}

// FetchAllCategories runs one sequential pass over the configured category
// set. A failing category is logged and skipped, EXCEPT the last one: its
// failure is returned so the scheduled task can retry the whole pass. The
// category order is therefore load-bearing.
func (s *Service) FetchAllCategories(ctx context.Context) (int, error) {
	logger := slog.Default()
	total := 0

	for i, category := range s.Config.Categories {
		count, err := s.FetchTopHeadlines(ctx, category, s.Config.Country)
		if err != nil {
			logger.Error("category ingestion failed",
				slog.String("category", category),
				slog.Any("error", err))
			if i == len(s.Config.Categories)-1 {
				return total, fmt.Errorf("FetchAllCategories: last category %q: %w", category, err)
			}
			continue
		}
		total += count
	}

	logger.Info("category pass completed",
		slog.Int("categories", len(s.Config.Categories)),
		slog.Int("created", total))
	return total, nil
}

// RunScheduled executes the scheduled ingestion task: a full category pass
// with a bounded retry (3 attempts, 60s apart) triggered only by a
// trailing-category failure. Returns the created count of the last attempt.
func (s *Service) RunScheduled(ctx context.Context) (int, error) {
	start := time.Now()

	var total int
	err := retry.WithFixedDelay(ctx, s.RetryConfig, func() error {
		n, passErr := s.FetchAllCategories(ctx)
		total = n
		return passErr
	})

	metrics.RecordIngestRun("scheduled", err == nil, time.Since(start))
	if err != nil {
		return total, fmt.Errorf("RunScheduled: %w", err)
	}
	return total, nil
}

func discardReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingURL):
		return "missing_url"
	case errors.Is(err, ErrInvalidPublishedAt):
		return "invalid_published_at"
	default:
		return "other"
	}
}

func fetchErrorType(err error) string {
	var rejected *newsapi.SourceRejectedError
	if errors.As(err, &rejected) {
		return "rejected"
	}
	var unavailable *newsapi.SourceUnavailableError
	if errors.As(err, &unavailable) {
		return "unavailable"
	}
	return "other"
}
