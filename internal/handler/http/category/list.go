// Package category provides the HTTP handler for the category listing
// endpoint.
package category

import (
	"net/http"

	"news-dashboard/internal/handler/http/respond"
	catUC "news-dashboard/internal/usecase/category"
)

// DTO represents the JSON structure for one category with its article count.
type DTO struct {
	ID           int64  `json:"id" example:"1"`
	Name         string `json:"name" example:"Business"`
	Slug         string `json:"slug" example:"business"`
	ArticleCount int64  `json:"article_count" example:"42"`
}

type ListHandler struct{ Svc *catUC.Service }

// ServeHTTP serves GET /categories: all known categories with their article
// counts, ordered by name.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(categories))
	for _, item := range categories {
		dtos = append(dtos, DTO{
			ID:           item.Category.ID,
			Name:         item.Category.Name,
			Slug:         item.Category.Slug,
			ArticleCount: item.ArticleCount,
		})
	}

	respond.JSON(w, http.StatusOK, map[string][]DTO{"data": dtos})
}

// Register registers the category HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *catUC.Service) {
	mux.Handle("GET /categories", ListHandler{Svc: svc})
}
