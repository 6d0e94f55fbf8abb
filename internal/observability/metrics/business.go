package metrics

import (
	"time"
)

// RecordArticleIngested records one newly created article. The category label
// is empty for keyword-search ingestion.
func RecordArticleIngested(category string) {
	ArticlesIngestedTotal.WithLabelValues(category).Inc()
}

// RecordArticleDuplicated records an upsert that found an existing URL.
func RecordArticleDuplicated(category string) {
	ArticlesDuplicatedTotal.WithLabelValues(category).Inc()
}

// RecordArticleDiscarded records a record dropped during normalization.
// reason should be "missing_url" or "invalid_published_at".
func RecordArticleDiscarded(reason string) {
	ArticlesDiscardedTotal.WithLabelValues(reason).Inc()
}

// RecordFetchError records an upstream fetch failure.
// mode should be "top_headlines" or "everything".
func RecordFetchError(mode, errorType string) {
	FetchErrorsTotal.WithLabelValues(mode, errorType).Inc()
}

// RecordIngestRun records the outcome and duration of an ingestion run.
// trigger should be "scheduled" or "manual"; status "success" or "failure".
func RecordIngestRun(trigger string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	IngestRunsTotal.WithLabelValues(trigger, status).Inc()
	IngestRunDuration.Observe(duration.Seconds())
}

// RecordCacheRequest records a read cache lookup for a resource
// ("articles", "categories", "sources").
func RecordCacheRequest(resource string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheRequestsTotal.WithLabelValues(resource, result).Inc()
}

// UpdateArticlesTotal updates the total count of articles in the database.
// This gauge is refreshed whenever a listing recomputes the total.
func UpdateArticlesTotal(count int64) {
	ArticlesTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_articles", "upsert_article").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
