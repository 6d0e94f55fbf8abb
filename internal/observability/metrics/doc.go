// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Ingestion metrics (articles created, duplicated, discarded, fetch errors)
//   - Read cache metrics (hits and misses per resource)
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "news-dashboard/internal/observability/metrics"
//
//	func storeBatch(category string) {
//	    start := time.Now()
//	    // ... store articles ...
//	    metrics.RecordArticleIngested(category)
//	    metrics.RecordOperationDuration("store_batch", time.Since(start))
//	}
package metrics
