// Command api serves the read API: filtered article listings, category and
// source listings with counts, the manual fetch trigger, and the usual
// health/metrics endpoints.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"news-dashboard/internal/common/pagination"
	appconfig "news-dashboard/internal/config"
	pgRepo "news-dashboard/internal/infra/adapter/persistence/postgres"
	"news-dashboard/internal/infra/db"
	"news-dashboard/internal/infra/newsapi"
	"news-dashboard/internal/observability/logging"
	"news-dashboard/internal/observability/tracing"
	"news-dashboard/internal/repository"
	"news-dashboard/pkg/cache"

	artUC "news-dashboard/internal/usecase/article"
	catUC "news-dashboard/internal/usecase/category"
	"news-dashboard/internal/usecase/ingest"
	srcUC "news-dashboard/internal/usecase/source"

	hhttp "news-dashboard/internal/handler/http"
	harticle "news-dashboard/internal/handler/http/article"
	hcategory "news-dashboard/internal/handler/http/category"
	hfetch "news-dashboard/internal/handler/http/fetch"
	"news-dashboard/internal/handler/http/requestid"
	hsource "news-dashboard/internal/handler/http/source"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ingestCfg, err := appconfig.LoadIngestConfig(os.Getenv("INGEST_CONFIG_PATH"))
	if err != nil {
		logger.Error("failed to load ingest configuration", slog.Any("error", err))
		os.Exit(1)
	}

	version := getVersion()
	handler, closeCaches := setupServer(logger, database, ingestCfg, version)
	defer closeCaches()

	runServer(logger, handler, version)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires repositories, caches, services, routes and middleware.
// The returned cleanup stops the cache janitors.
func setupServer(logger *slog.Logger, database *sql.DB, ingestCfg appconfig.IngestConfig, version string) (http.Handler, func()) {
	cacheCfg := cache.Config{
		TTL:             ingestCfg.CacheTTL,
		CleanupInterval: time.Minute,
	}
	articleCache := cache.NewTTLStore(cacheCfg)
	categoryCache := cache.NewTTLStore(cacheCfg)
	sourceCache := cache.NewTTLStore(cacheCfg)
	closeCaches := func() {
		articleCache.Close()
		categoryCache.Close()
		sourceCache.Close()
	}

	articleRepo := pgRepo.NewArticleRepo(database)
	categoryRepo := pgRepo.NewCategoryRepo(database)
	sourceRepo := pgRepo.NewSourceRepo(database)

	artSvc := &artUC.Service{Repo: articleRepo, Cache: articleCache}
	catSvc := &catUC.Service{Repo: categoryRepo, Cache: categoryCache}
	srcSvc := &srcUC.Service{Repo: sourceRepo, Cache: sourceCache}

	mux := http.NewServeMux()

	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	paginationCfg := pagination.LoadFromEnv()
	harticle.Register(mux, artSvc, paginationCfg, logger)
	hcategory.Register(mux, catSvc)
	hsource.Register(mux, srcSvc)

	hfetch.Register(mux, buildIngestor(logger, articleRepo, categoryRepo, sourceRepo, ingestCfg), logger)

	return applyMiddleware(logger, mux), closeCaches
}

// buildIngestor constructs the ingestion service behind POST /fetch. A
// missing API key is not fatal for the read API; the trigger endpoint
// surfaces the configuration error instead.
func buildIngestor(logger *slog.Logger, articles repository.ArticleRepository, categories repository.CategoryRepository, sources repository.SourceRepository, ingestCfg appconfig.IngestConfig) hfetch.Ingestor {
	client, err := newsapi.NewClient(newsapi.ConfigFromEnv())
	if err != nil {
		logger.Warn("news client unavailable, manual fetch will fail",
			slog.Any("error", err))
		return unavailableIngestor{err: err}
	}

	return ingest.NewService(articles, categories, sources, client, ingestCfg)
}

// unavailableIngestor reports the construction error on every call.
type unavailableIngestor struct{ err error }

func (u unavailableIngestor) FetchTopHeadlines(context.Context, string, string) (int, error) {
	return 0, u.err
}

func (u unavailableIngestor) FetchEverything(context.Context, string) (int, error) {
	return 0, u.err
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): Request ID, Tracing, Rate Limit, Recovery,
// Logging, Body Limit, Timeout, Metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	rateLimiter := hhttp.NewRateLimiter(300, time.Minute)

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(30 * time.Second)(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":" + getPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris guard
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

func getPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return port
}
