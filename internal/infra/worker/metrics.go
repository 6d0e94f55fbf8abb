package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"news-dashboard/internal/pkg/config"
)

// WorkerMetrics tracks scheduled ingestion job execution. It embeds the
// standard configuration metrics and adds per-run counters and timings.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// CronJobRunsTotal counts job runs by status (success/failure).
	CronJobRunsTotal *prometheus.CounterVec

	// CronJobDurationSeconds measures end-to-end run duration, retries
	// included. Buckets cover quick no-op passes up to timeout-length runs.
	CronJobDurationSeconds prometheus.Histogram

	// CronJobArticlesCreatedTotal counts new articles created across runs.
	CronJobArticlesCreatedTotal prometheus.Counter

	// CronJobLastSuccessTimestamp records the Unix time of the last
	// successful run, for staleness alerting.
	CronJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates and registers the worker metric set.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		CronJobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cron_job_runs_total",
			Help: "Total number of scheduled ingestion runs by status (success/failure)",
		}, []string{"status"}),

		CronJobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_cron_job_duration_seconds",
			Help:    "Duration of scheduled ingestion runs in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),

		CronJobArticlesCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_cron_job_articles_created_total",
			Help: "Total number of new articles created across all scheduled runs",
		}),

		CronJobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled ingestion run",
		}),
	}
}

// RecordJobRun counts one run with the given status ("success"/"failure").
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.CronJobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes one run's duration in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.CronJobDurationSeconds.Observe(seconds)
}

// RecordArticlesCreated adds the number of new articles a run produced.
func (m *WorkerMetrics) RecordArticlesCreated(count int) {
	m.CronJobArticlesCreatedTotal.Add(float64(count))
}

// RecordLastSuccess marks now as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.CronJobLastSuccessTimestamp.SetToCurrentTime()
}
