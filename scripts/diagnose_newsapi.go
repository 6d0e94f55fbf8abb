// Diagnostic tool for the upstream news API. Probes top-headlines for every
// configured category with the configured key and reports status, article
// count and latency per category, so a bad key or a dead category shows up
// before the scheduled worker trips over it.
//
// Usage: go run scripts/diagnose_newsapi.go [--output json]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	appconfig "news-dashboard/internal/config"
	"news-dashboard/internal/infra/newsapi"
)

// CategoryDiagnostic is the probe result for a single category.
type CategoryDiagnostic struct {
	Category     string `json:"category"`
	Status       string `json:"status"` // "OK", "REJECTED", "UNAVAILABLE"
	ArticleCount int    `json:"article_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

func main() {
	var outputFormat string
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	ingestCfg, err := appconfig.LoadIngestConfig(os.Getenv("INGEST_CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load ingest configuration: %v", err)
	}

	client, err := newsapi.NewClient(newsapi.ConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to create news client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	results := make([]CategoryDiagnostic, 0, len(ingestCfg.Categories))
	for _, category := range ingestCfg.Categories {
		results = append(results, probeCategory(ctx, client, category, ingestCfg.Country, ingestCfg.PageSize))
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatalf("Failed to encode results: %v", err)
		}
		return
	}

	printReport(results)
}

func probeCategory(ctx context.Context, client *newsapi.Client, category, country string, pageSize int) CategoryDiagnostic {
	diag := CategoryDiagnostic{Category: category}

	start := time.Now()
	records, err := client.FetchTopHeadlines(ctx, category, country, pageSize)
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		diag.ErrorMessage = err.Error()
		var rejected *newsapi.SourceRejectedError
		if errors.As(err, &rejected) {
			diag.Status = "REJECTED"
		} else {
			diag.Status = "UNAVAILABLE"
		}
		return diag
	}

	diag.Status = "OK"
	diag.ArticleCount = len(records)
	for _, r := range records {
		if r.PublishedAt > diag.LatestDate {
			diag.LatestDate = r.PublishedAt
		}
	}
	return diag
}

func printReport(results []CategoryDiagnostic) {
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println("UPSTREAM NEWS API DIAGNOSTIC")
	fmt.Println(strings.Repeat("=", 72))

	healthy := 0
	for _, r := range results {
		marker := "FAIL"
		if r.Status == "OK" {
			marker = " OK "
			healthy++
		}
		fmt.Printf("[%s] %-14s %4d articles  %5dms", marker, r.Category, r.ArticleCount, r.ResponseTime)
		if r.LatestDate != "" {
			fmt.Printf("  latest %s", r.LatestDate)
		}
		if r.ErrorMessage != "" {
			fmt.Printf("  %s", r.ErrorMessage)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("%d/%d categories healthy\n", healthy, len(results))
	if healthy < len(results) {
		os.Exit(1)
	}
}
