// Package fetch provides the HTTP handler for manually triggered ingestion.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"news-dashboard/internal/handler/http/respond"
	"news-dashboard/internal/infra/newsapi"
	"news-dashboard/internal/observability/logging"
	"news-dashboard/internal/observability/metrics"
)

// Defaults applied when the request names no category or country.
const (
	DefaultCategory = "general"
	DefaultCountry  = "us"
)

// Ingestor is the ingestion surface the handler drives.
type Ingestor interface {
	FetchTopHeadlines(ctx context.Context, category, country string) (int, error)
	FetchEverything(ctx context.Context, query string) (int, error)
}

// Request is the JSON body of POST /fetch. All fields are optional.
type Request struct {
	Category string `json:"category"`
	Country  string `json:"country"`
	Query    string `json:"query"`
}

// Response reports how many new articles the trigger created.
type Response struct {
	Created int `json:"created"`
}

type Handler struct {
	Svc    Ingestor
	Logger *slog.Logger
}

// ServeHTTP serves POST /fetch: an on-demand ingestion trigger. The
// category/country headline fetch always runs, falling back to
// "general"/"us"; a non-empty query additionally runs a keyword fetch, and
// the response carries the combined created count.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, h.Logger)

	var req Request
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}
	}

	if req.Category == "" {
		req.Category = DefaultCategory
	}
	if req.Country == "" {
		req.Country = DefaultCountry
	}

	created, err := h.Svc.FetchTopHeadlines(ctx, req.Category, req.Country)
	if err != nil {
		h.fail(w, logger, req, err, time.Since(start))
		return
	}

	if req.Query != "" {
		n, err := h.Svc.FetchEverything(ctx, req.Query)
		if err != nil {
			h.fail(w, logger, req, err, time.Since(start))
			return
		}
		created += n
	}

	metrics.RecordIngestRun("manual", true, time.Since(start))
	logger.Info("manual fetch completed",
		slog.String("category", req.Category),
		slog.String("country", req.Country),
		slog.String("query", req.Query),
		slog.Int("created", created))

	respond.JSON(w, http.StatusOK, Response{Created: created})
}

// fail maps an ingestion error to its HTTP status: upstream trouble is a
// 502, a missing API key or anything else is a 500.
func (h Handler) fail(w http.ResponseWriter, logger *slog.Logger, req Request, err error, elapsed time.Duration) {
	metrics.RecordIngestRun("manual", false, elapsed)
	logger.Error("manual fetch failed",
		slog.String("category", req.Category),
		slog.String("country", req.Country),
		slog.String("query", req.Query),
		slog.Any("error", err))

	code := http.StatusInternalServerError

	var rejected *newsapi.SourceRejectedError
	var unavailable *newsapi.SourceUnavailableError
	switch {
	case errors.As(err, &rejected), errors.As(err, &unavailable):
		code = http.StatusBadGateway
	}

	respond.SafeError(w, code, err)
}

// Register registers the fetch HTTP handler with the given mux.
func Register(mux *http.ServeMux, svc Ingestor, logger *slog.Logger) {
	mux.Handle("POST /fetch", Handler{Svc: svc, Logger: logger})
}
