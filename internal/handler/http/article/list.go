package article

import (
	"log/slog"
	"net/http"
	"time"

	"news-dashboard/internal/common/pagination"
	"news-dashboard/internal/handler/http/requestid"
	"news-dashboard/internal/handler/http/respond"
	"news-dashboard/internal/observability/logging"
	"news-dashboard/internal/repository"
	artUC "news-dashboard/internal/usecase/article"
)

type ListHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP serves GET /articles: a filtered, paginated article listing
// ordered by publication time, newest first.
//
// Query parameters:
//   - category: category slug, exact match
//   - source: external source identifier, exact match
//   - country: two-letter country code, case-insensitive
//   - q: substring match over title or description
//   - page, limit: pagination coordinates
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	query := r.URL.Query()
	filter := repository.ArticleFilter{
		CategorySlug: query.Get("category"),
		SourceID:     query.Get("source"),
		Country:      query.Get("country"),
		Search:       query.Get("q"),
	}

	result, err := h.Svc.ListFiltered(ctx, filter, params)
	if err != nil {
		logger.Error("failed to list articles",
			"error", err.Error(),
			"page", params.Page,
			"limit", params.Limit,
			"request_id", reqID)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Data))
	for _, item := range result.Data {
		dtos = append(dtos, toDTO(item))
	}

	response := pagination.NewResponse(dtos, result.Pagination)

	logger.Info("article list served",
		"page", params.Page,
		"limit", params.Limit,
		"returned_count", len(dtos),
		"duration_ms", time.Since(startTime).Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, response)
}
