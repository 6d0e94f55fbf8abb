// Command worker runs the scheduled news ingestion job. Every tick it
// fetches top headlines for each configured category, stores the new
// articles, and reports run metrics. Liveness and readiness probes are
// served on a separate port.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	appconfig "news-dashboard/internal/config"
	"news-dashboard/internal/handler/http/respond"
	pgRepo "news-dashboard/internal/infra/adapter/persistence/postgres"
	"news-dashboard/internal/infra/db"
	"news-dashboard/internal/infra/newsapi"
	workerPkg "news-dashboard/internal/infra/worker"
	"news-dashboard/internal/observability/logging"
	"news-dashboard/internal/resilience/retry"
	"news-dashboard/internal/usecase/ingest"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("job_timeout", workerConfig.JobTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	svc := setupIngestService(logger, database)

	startMetricsServer(ctx, logger)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	startCronWorker(logger, svc, workerConfig, workerMetrics, healthServer)
}

// initDatabase opens the database connection and waits for migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

// waitForMigrations blocks until the schema is in place. Any probe error
// retries; the table may simply not exist yet while migrations run.
func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM articles LIMIT 1"
	cfg := retry.Config{MaxAttempts: 10, InitialDelay: 3 * time.Second}

	err := retry.WithFixedDelay(context.Background(), cfg, func() error {
		_, probeErr := db.Exec(probe)
		return probeErr
	})
	if err != nil {
		logger.Error("migrations did not complete in time", slog.Any("error", err))
		os.Exit(1)
	}
}

// setupIngestService wires the repositories and the upstream client. The
// worker cannot do anything useful without an API key, so a missing key is
// fatal here, unlike in the read API.
func setupIngestService(logger *slog.Logger, database *sql.DB) *ingest.Service {
	ingestCfg, err := appconfig.LoadIngestConfig(os.Getenv("INGEST_CONFIG_PATH"))
	if err != nil {
		logger.Error("failed to load ingest configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("ingest configuration loaded",
		slog.Any("categories", ingestCfg.Categories),
		slog.String("country", ingestCfg.Country),
		slog.Int("page_size", ingestCfg.PageSize))

	client, err := newsapi.NewClient(newsapi.ConfigFromEnv())
	if err != nil {
		logger.Error("failed to create news client", slog.Any("error", err))
		os.Exit(1)
	}

	return ingest.NewService(
		pgRepo.NewArticleRepo(database),
		pgRepo.NewCategoryRepo(database),
		pgRepo.NewSourceRepo(database),
		client,
		ingestCfg,
	)
}

// startCronWorker registers the ingestion job and blocks forever.
func startCronWorker(logger *slog.Logger, svc *ingest.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runIngestJob(logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runIngestJob executes a single scheduled ingestion pass with timeout,
// retry and metrics. Retries happen inside RunScheduled; a failure here
// means all attempts were exhausted.
func runIngestJob(logger *slog.Logger, svc *ingest.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	logger.Info("scheduled ingestion started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
	defer cancel()

	created, err := svc.RunScheduled(ctx)
	if err != nil {
		logger.Error("scheduled ingestion failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	metrics.RecordJobRun("success")
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	metrics.RecordArticlesCreated(created)
	metrics.RecordLastSuccess()

	logger.Info("scheduled ingestion completed",
		slog.Int("created", created),
		slog.Duration("duration", time.Since(startTime)))
}
