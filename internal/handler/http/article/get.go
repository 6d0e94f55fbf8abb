package article

import (
	"errors"
	"net/http"

	"news-dashboard/internal/handler/http/pathutil"
	"news-dashboard/internal/handler/http/respond"
	artUC "news-dashboard/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

// ServeHTTP serves GET /articles/{id}: one article including its full
// content and related source/category records.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	found, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if found == nil {
		respond.SafeError(w, http.StatusNotFound, errors.New("article not found"))
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(*found))
}
