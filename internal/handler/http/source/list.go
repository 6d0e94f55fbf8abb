// Package source provides the HTTP handler for the source listing endpoint.
package source

import (
	"net/http"

	"news-dashboard/internal/handler/http/respond"
	srcUC "news-dashboard/internal/usecase/source"
)

// DTO represents the JSON structure for one source with its article count.
type DTO struct {
	ID           int64  `json:"id" example:"1"`
	SourceID     string `json:"source_id" example:"bbc-news"`
	Name         string `json:"name" example:"BBC News"`
	Description  string `json:"description,omitempty"`
	URL          string `json:"url,omitempty" example:"https://www.bbc.co.uk/news"`
	Country      string `json:"country,omitempty" example:"us"`
	Language     string `json:"language,omitempty" example:"en"`
	ArticleCount int64  `json:"article_count" example:"42"`
}

type ListHandler struct{ Svc *srcUC.Service }

// ServeHTTP serves GET /sources: all known sources with their article
// counts, ordered by name.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sources, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(sources))
	for _, item := range sources {
		dtos = append(dtos, DTO{
			ID:           item.Source.ID,
			SourceID:     item.Source.SourceID,
			Name:         item.Source.Name,
			Description:  item.Source.Description,
			URL:          item.Source.URL,
			Country:      item.Source.Country,
			Language:     item.Source.Language,
			ArticleCount: item.ArticleCount,
		})
	}

	respond.JSON(w, http.StatusOK, map[string][]DTO{"data": dtos})
}

// Register registers the source HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *srcUC.Service) {
	mux.Handle("GET /sources", ListHandler{Svc: svc})
}
