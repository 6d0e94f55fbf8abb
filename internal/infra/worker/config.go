// Package worker provides the runtime scaffolding for the scheduled
// ingestion binary: configuration, a health endpoint for orchestrators, and
// job execution metrics.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"news-dashboard/internal/pkg/config"
)

// WorkerConfig controls the scheduled ingestion job: when it fires, in which
// timezone, how long one run may take, and where the health server listens.
//
// Loading is fail-open: an invalid environment value falls back to the
// default with a warning and a metrics bump, never a startup failure.
type WorkerConfig struct {
	// CronSchedule is the five-field cron expression for the ingestion job.
	// Default: "*/30 * * * *" (every 30 minutes).
	CronSchedule string

	// Timezone is the IANA timezone name the schedule is evaluated in.
	// Default: "UTC".
	Timezone string

	// JobTimeout bounds a single ingestion run, including its internal
	// retries. Must stay under the schedule interval or runs pile up.
	// Default: 25 minutes.
	JobTimeout time.Duration

	// HealthPort is the port for the health check HTTP server.
	// Default: 9091.
	HealthPort int
}

// DefaultConfig returns the production defaults: a half-hourly pass over
// all categories, evaluated in UTC.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "*/30 * * * *",
		Timezone:     "UTC",
		JobTimeout:   25 * time.Minute,
		HealthPort:   9091,
	}
}

// Validate checks all fields and aggregates every violation into one error.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}

	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}

	if err := config.ValidatePositiveDuration(c.JobTimeout); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}

	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}

	return nil
}

// LoadConfigFromEnv loads the worker configuration from the environment
// with per-field validation and fallback. It always returns a valid
// configuration; fallbacks are logged and counted but never fatal.
//
// Environment variables:
//   - INGEST_SCHEDULE: cron expression (default "*/30 * * * *")
//   - WORKER_TIMEZONE: IANA timezone (default "UTC")
//   - INGEST_JOB_TIMEOUT: duration, 1m to 4h (default 25m)
//   - WORKER_HEALTH_PORT: 1024-65535 (default 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	result := config.LoadEnvWithFallback("INGEST_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	fallbackApplied = recordFallback(logger, metrics, result, "cron_schedule") || fallbackApplied

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	fallbackApplied = recordFallback(logger, metrics, result, "timezone") || fallbackApplied

	result = config.LoadEnvDuration("INGEST_JOB_TIMEOUT", cfg.JobTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.JobTimeout = result.Value.(time.Duration)
	fallbackApplied = recordFallback(logger, metrics, result, "job_timeout") || fallbackApplied

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	fallbackApplied = recordFallback(logger, metrics, result, "health_port") || fallbackApplied

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}

func recordFallback(logger *slog.Logger, metrics *WorkerMetrics, result config.ConfigLoadResult, field string) bool {
	if !result.FallbackApplied {
		return false
	}

	metrics.RecordValidationError(field)
	metrics.RecordFallback(field, "default")
	for _, warning := range result.Warnings {
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}
	return true
}
