package article

import (
	"log/slog"
	"net/http"

	"news-dashboard/internal/common/pagination"
	artUC "news-dashboard/internal/usecase/article"
)

// Register registers the article HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *artUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /articles", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /articles/", GetHandler{Svc: svc})
}
