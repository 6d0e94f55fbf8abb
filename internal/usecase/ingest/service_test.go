package ingest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-dashboard/internal/config"
	"news-dashboard/internal/domain/entity"
	"news-dashboard/internal/infra/newsapi"
	"news-dashboard/internal/repository"
	"news-dashboard/internal/resilience/retry"
	"news-dashboard/internal/usecase/ingest"
)

/* ──────────────────────────────── stubs ──────────────────────────────── */

type memArticles struct {
	byURL  map[string]*entity.Article
	nextID int64

	// failURLs makes GetOrCreate fail for specific URLs, for isolation tests
	failURLs map[string]bool
}

func newMemArticles() *memArticles {
	return &memArticles{byURL: map[string]*entity.Article{}, failURLs: map[string]bool{}}
}

func (m *memArticles) GetOrCreate(_ context.Context, article *entity.Article) (bool, error) {
	if m.failURLs[article.URL] {
		return false, errors.New("storage failure")
	}
	if _, exists := m.byURL[article.URL]; exists {
		return false, nil
	}
	m.nextID++
	stored := *article
	stored.ID = m.nextID
	m.byURL[article.URL] = &stored
	return true, nil
}

func (m *memArticles) ListFiltered(context.Context, repository.ArticleFilter, int, int) ([]repository.ArticleWithRefs, error) {
	return nil, nil
}

func (m *memArticles) CountFiltered(context.Context, repository.ArticleFilter) (int64, error) {
	return int64(len(m.byURL)), nil
}

func (m *memArticles) GetWithRefs(context.Context, int64) (*repository.ArticleWithRefs, error) {
	return nil, nil
}

type memCategories struct {
	bySlug map[string]*entity.Category
	nextID int64
	calls  int
}

func newMemCategories() *memCategories {
	return &memCategories{bySlug: map[string]*entity.Category{}}
}

func (m *memCategories) GetOrCreate(_ context.Context, name, slug string) (*entity.Category, error) {
	m.calls++
	if existing, ok := m.bySlug[slug]; ok {
		return existing, nil
	}
	m.nextID++
	created := &entity.Category{ID: m.nextID, Name: name, Slug: slug}
	m.bySlug[slug] = created
	return created, nil
}

func (m *memCategories) ListWithCounts(context.Context) ([]repository.CategoryWithCount, error) {
	return nil, nil
}

type memSources struct {
	byID   map[string]*entity.Source
	nextID int64
}

func newMemSources() *memSources {
	return &memSources{byID: map[string]*entity.Source{}}
}

func (m *memSources) GetOrCreate(_ context.Context, source *entity.Source) (*entity.Source, error) {
	if existing, ok := m.byID[source.SourceID]; ok {
		return existing, nil
	}
	m.nextID++
	stored := *source
	stored.ID = m.nextID
	m.byID[source.SourceID] = &stored
	return &stored, nil
}

func (m *memSources) ListWithCounts(context.Context) ([]repository.SourceWithCount, error) {
	return nil, nil
}

// stubFetcher serves canned per-category batches and scripted errors.
type stubFetcher struct {
	headlines  map[string][]newsapi.RawArticle
	errs       map[string][]error // consumed one per call
	calls      map[string]int
	everything []newsapi.RawArticle
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		headlines: map[string][]newsapi.RawArticle{},
		errs:      map[string][]error{},
		calls:     map[string]int{},
	}
}

func (f *stubFetcher) FetchTopHeadlines(_ context.Context, category, _ string, _ int) ([]newsapi.RawArticle, error) {
	f.calls[category]++
	if queue := f.errs[category]; len(queue) > 0 {
		err := queue[0]
		f.errs[category] = queue[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.headlines[category], nil
}

func (f *stubFetcher) FetchEverything(_ context.Context, _ string, _ int, _ string) ([]newsapi.RawArticle, error) {
	f.calls["everything"]++
	return f.everything, nil
}

func newTestService(fetcher ingest.Fetcher) (*ingest.Service, *memArticles, *memCategories, *memSources) {
	articles := newMemArticles()
	categories := newMemCategories()
	sources := newMemSources()
	svc := ingest.NewService(articles, categories, sources, fetcher, config.DefaultIngestConfig())
	svc.RetryConfig = retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond}
	return svc, articles, categories, sources
}

func rawRecord(url, title string) newsapi.RawArticle {
	return newsapi.RawArticle{
		Source:      newsapi.RawSource{ID: "bbc", Name: "BBC"},
		Title:       title,
		URL:         url,
		PublishedAt: "2024-01-15T10:00:00Z",
	}
}

/* ──────────────────────────────── Store ──────────────────────────────── */

func TestStore_Idempotent(t *testing.T) {
	svc, _, _, _ := newTestService(newStubFetcher())
	batch := []newsapi.RawArticle{
		rawRecord("http://a", "T1"),
		rawRecord("http://b", "T2"),
	}

	first, err := svc.Store(context.Background(), batch, "general", "us")
	require.NoError(t, err)
	assert.Equal(t, 2, first)

	second, err := svc.Store(context.Background(), batch, "general", "us")
	require.NoError(t, err)
	assert.Equal(t, 0, second)
}

func TestStore_DedupKeepsFirstSeenFields(t *testing.T) {
	svc, articles, _, _ := newTestService(newStubFetcher())
	batch := []newsapi.RawArticle{
		rawRecord("http://a", "first title"),
		rawRecord("http://a", "second title"),
	}

	created, err := svc.Store(context.Background(), batch, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, "first title", articles.byURL["http://a"].Title)
}

func TestStore_DiscardsMalformedRecords(t *testing.T) {
	svc, articles, _, _ := newTestService(newStubFetcher())
	batch := []newsapi.RawArticle{
		{Title: "no url", PublishedAt: "2024-01-15T10:00:00Z"},
		{URL: "http://a", Title: "bad date", PublishedAt: "not-a-date"},
		{URL: "http://b", Title: "no date"},
	}

	created, err := svc.Store(context.Background(), batch, "general", "us")
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Empty(t, articles.byURL)
}

func TestStore_FallbackSourceIdentity(t *testing.T) {
	svc, _, _, sources := newTestService(newStubFetcher())
	batch := []newsapi.RawArticle{
		{
			Source:      newsapi.RawSource{Name: "Daily Times"},
			URL:         "http://a",
			PublishedAt: "2024-01-15T10:00:00Z",
		},
		{
			Source:      newsapi.RawSource{Name: "Daily Times"},
			URL:         "http://b",
			PublishedAt: "2024-01-15T11:00:00Z",
		},
	}

	created, err := svc.Store(context.Background(), batch, "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	require.Len(t, sources.byID, 1, "same name must reuse one source")
	src, ok := sources.byID["daily-times"]
	require.True(t, ok, "identifier must be slug-derived from the name")
	assert.Equal(t, "Daily Times", src.Name)
}

func TestStore_UnknownSourceFallback(t *testing.T) {
	svc, _, _, sources := newTestService(newStubFetcher())
	batch := []newsapi.RawArticle{
		{URL: "http://a", PublishedAt: "2024-01-15T10:00:00Z"},
	}

	created, err := svc.Store(context.Background(), batch, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	_, ok := sources.byID[entity.FallbackSourceID]
	assert.True(t, ok, "empty id and name must map to the literal fallback source")
}

func TestStore_Scenario(t *testing.T) {
	svc, articles, categories, sources := newTestService(newStubFetcher())
	batch := []newsapi.RawArticle{
		{
			Source:      newsapi.RawSource{ID: "bbc", Name: "BBC"},
			Title:       "T1",
			URL:         "http://a",
			PublishedAt: "2024-01-15T10:00:00Z",
		},
	}

	created, err := svc.Store(context.Background(), batch, "general", "us")
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	art := articles.byURL["http://a"]
	require.NotNil(t, art)
	assert.Equal(t, "T1", art.Title)
	assert.Equal(t, "us", art.Country)

	_, ok := sources.byID["bbc"]
	assert.True(t, ok)

	cat, ok := categories.bySlug["general"]
	require.True(t, ok)
	assert.Equal(t, "General", cat.Name)

	// Re-ingesting the same batch changes nothing.
	again, err := svc.Store(context.Background(), batch, "general", "us")
	require.NoError(t, err)
	assert.Equal(t, 0, again)
	assert.Len(t, sources.byID, 1)
	assert.Len(t, categories.bySlug, 1)
}

func TestStore_CategoryResolvedOncePerCall(t *testing.T) {
	svc, _, categories, _ := newTestService(newStubFetcher())
	batch := []newsapi.RawArticle{
		rawRecord("http://a", "T1"),
		rawRecord("http://b", "T2"),
		rawRecord("http://c", "T3"),
	}

	_, err := svc.Store(context.Background(), batch, "technology", "us")
	require.NoError(t, err)
	assert.Equal(t, 1, categories.calls)
}

func TestStore_RecordFailureDoesNotAbortBatch(t *testing.T) {
	svc, articles, _, _ := newTestService(newStubFetcher())
	articles.failURLs["http://b"] = true

	batch := []newsapi.RawArticle{
		rawRecord("http://a", "T1"),
		rawRecord("http://b", "T2"),
		rawRecord("http://c", "T3"),
	}

	created, err := svc.Store(context.Background(), batch, "general", "us")
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestStore_NoCategoryContext(t *testing.T) {
	svc, articles, categories, _ := newTestService(newStubFetcher())

	created, err := svc.Store(context.Background(), []newsapi.RawArticle{
		rawRecord("http://a", "T1"),
	}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	assert.Empty(t, categories.bySlug)
	assert.Nil(t, articles.byURL["http://a"].CategoryID)
}

/* ──────────────────────────── category passes ──────────────────────────── */

func TestFetchAllCategories_MidFailureContinues(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.headlines["business"] = []newsapi.RawArticle{rawRecord("http://biz", "B")}
	fetcher.headlines["technology"] = []newsapi.RawArticle{rawRecord("http://tech", "T")}
	fetcher.errs["general"] = []error{&newsapi.SourceUnavailableError{Err: errors.New("timeout")}}

	svc, _, _, _ := newTestService(fetcher)

	total, err := svc.FetchAllCategories(context.Background())
	require.NoError(t, err, "mid-pass failure must not surface")
	assert.Equal(t, 2, total)

	for _, category := range config.DefaultCategories {
		assert.Equal(t, 1, fetcher.calls[category], "category %s", category)
	}
}

func TestRunScheduled_LastCategoryFailureRetriesWholeTask(t *testing.T) {
	fetcher := newStubFetcher()
	// technology is last in the default set; make it fail on every attempt
	fetcher.errs["technology"] = []error{
		&newsapi.SourceUnavailableError{Err: errors.New("down")},
		&newsapi.SourceUnavailableError{Err: errors.New("down")},
		&newsapi.SourceUnavailableError{Err: errors.New("down")},
	}

	svc, _, _, _ := newTestService(fetcher)

	_, err := svc.RunScheduled(context.Background())
	require.Error(t, err)

	assert.Equal(t, 3, fetcher.calls["technology"], "task retries 3 times in total")
	assert.Equal(t, 3, fetcher.calls["business"], "the WHOLE pass is retried, not just the last category")
}

func TestRunScheduled_SucceedsAfterRetry(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.errs["technology"] = []error{
		&newsapi.SourceUnavailableError{Err: errors.New("down")},
	}
	fetcher.headlines["technology"] = []newsapi.RawArticle{rawRecord("http://tech", "T")}

	svc, _, _, _ := newTestService(fetcher)

	total, err := svc.RunScheduled(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 2, fetcher.calls["technology"])
}

/* ─────────────────────────── manual triggers ─────────────────────────── */

func TestFetchTopHeadlines_SurfacesFetchError(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.errs["general"] = []error{&newsapi.SourceRejectedError{Code: "apiKeyInvalid", Message: "bad key"}}

	svc, _, _, _ := newTestService(fetcher)

	_, err := svc.FetchTopHeadlines(context.Background(), "general", "us")
	var rejected *newsapi.SourceRejectedError
	require.True(t, errors.As(err, &rejected))
}

func TestFetchEverything_StoresWithoutCategory(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.everything = []newsapi.RawArticle{rawRecord("http://kw", "Keyword hit")}

	svc, articles, categories, _ := newTestService(fetcher)

	created, err := svc.FetchEverything(context.Background(), "golang")
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Empty(t, categories.bySlug)
	assert.Nil(t, articles.byURL["http://kw"].CategoryID)
}
