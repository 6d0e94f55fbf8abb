package fetch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-dashboard/internal/handler/http/fetch"
	"news-dashboard/internal/infra/newsapi"
)

type stubIngestor struct {
	headlinesCreated int
	headlinesErr     error
	everythingCreated int
	everythingErr    error

	gotCategory string
	gotCountry  string
	gotQuery    string
}

func (s *stubIngestor) FetchTopHeadlines(_ context.Context, category, country string) (int, error) {
	s.gotCategory = category
	s.gotCountry = country
	return s.headlinesCreated, s.headlinesErr
}

func (s *stubIngestor) FetchEverything(_ context.Context, query string) (int, error) {
	s.gotQuery = query
	return s.everythingCreated, s.everythingErr
}

func newHandler(svc *stubIngestor) fetch.Handler {
	return fetch.Handler{
		Svc:    svc,
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
}

func post(body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(http.MethodPost, "/fetch", nil)
	}
	return httptest.NewRequest(http.MethodPost, "/fetch", strings.NewReader(body))
}

func TestFetch_DefaultsWithEmptyBody(t *testing.T) {
	svc := &stubIngestor{headlinesCreated: 5}
	rec := httptest.NewRecorder()

	newHandler(svc).ServeHTTP(rec, post(""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "general", svc.gotCategory)
	assert.Equal(t, "us", svc.gotCountry)
	assert.Empty(t, svc.gotQuery)
	assert.JSONEq(t, `{"created":5}`, rec.Body.String())
}

func TestFetch_ExplicitCategoryAndCountry(t *testing.T) {
	svc := &stubIngestor{headlinesCreated: 2}
	rec := httptest.NewRecorder()

	newHandler(svc).ServeHTTP(rec, post(`{"category":"science","country":"gb"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "science", svc.gotCategory)
	assert.Equal(t, "gb", svc.gotCountry)
}

func TestFetch_QueryAddsKeywordFetch(t *testing.T) {
	svc := &stubIngestor{headlinesCreated: 3, everythingCreated: 4}
	rec := httptest.NewRecorder()

	newHandler(svc).ServeHTTP(rec, post(`{"query":"golang"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "golang", svc.gotQuery)
	assert.JSONEq(t, `{"created":7}`, rec.Body.String())
}

func TestFetch_MalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(&stubIngestor{}).ServeHTTP(rec, post(`{not json`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFetch_UpstreamRejection(t *testing.T) {
	svc := &stubIngestor{headlinesErr: &newsapi.SourceRejectedError{Code: "apiKeyInvalid", Message: "bad key"}}
	rec := httptest.NewRecorder()

	newHandler(svc).ServeHTTP(rec, post(""))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestFetch_UpstreamUnavailable(t *testing.T) {
	svc := &stubIngestor{headlinesErr: &newsapi.SourceUnavailableError{Err: errors.New("timeout")}}
	rec := httptest.NewRecorder()

	newHandler(svc).ServeHTTP(rec, post(""))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestFetch_KeywordFetchFailureSurfaces(t *testing.T) {
	svc := &stubIngestor{headlinesCreated: 3, everythingErr: errors.New("storage down")}
	rec := httptest.NewRecorder()

	newHandler(svc).ServeHTTP(rec, post(`{"query":"golang"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
