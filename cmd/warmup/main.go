// Package main provides a CLI that primes the read API's caches after a
// deploy. It issues the hot read requests (category and source listings,
// the first article page overall and per configured category) so the first
// real users hit warm entries.
// Usage: news-warmup [--base-url URL] [--timeout D] [--concurrency N]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	appconfig "news-dashboard/internal/config"
	"news-dashboard/internal/observability/logging"
	"news-dashboard/internal/resilience/retry"
)

func main() {
	var (
		baseURL     string
		timeout     time.Duration
		concurrency int
	)

	flag.StringVar(&baseURL, "base-url", "http://localhost:8080", "Base URL of the read API")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Overall warmup deadline")
	flag.IntVar(&concurrency, "concurrency", 4, "Number of concurrent warmup requests")
	flag.Parse()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ingestCfg, err := appconfig.LoadIngestConfig(os.Getenv("INGEST_CONFIG_PATH"))
	if err != nil {
		logger.Error("failed to load ingest configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	paths := warmupPaths(ingestCfg.Categories)
	client := &http.Client{Timeout: 10 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	start := time.Now()
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return warm(ctx, client, logger, baseURL+path)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("warmup failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("warmup completed",
		slog.Int("requests", len(paths)),
		slog.Duration("duration", time.Since(start)))
}

// warmupPaths lists the requests worth priming: the listing endpoints and
// the first page of articles, overall and per category.
func warmupPaths(categories []string) []string {
	paths := []string{
		"/categories",
		"/sources",
		"/articles",
	}
	for _, category := range categories {
		paths = append(paths, "/articles?category="+url.QueryEscape(category))
	}
	return paths
}

// warm requests one path, retrying with backoff while the API is still
// coming up. Connection refusals and 5xx responses retry; a 4xx means the
// path itself is wrong and aborts immediately.
func warm(ctx context.Context, client *http.Client, logger *slog.Logger, target string) error {
	err := retry.WithBackoff(ctx, retry.DefaultConfig(), func() error {
		return requestOnce(ctx, client, logger, target)
	})
	if err != nil {
		return fmt.Errorf("warm: %s: %w", target, err)
	}

	logger.Info("primed", slog.String("path", target))
	return nil
}

func requestOnce(ctx context.Context, client *http.Client, logger *slog.Logger, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", slog.Any("error", err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return &retry.HTTPError{StatusCode: resp.StatusCode, Message: target}
	}

	return nil
}
