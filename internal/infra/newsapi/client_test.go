package newsapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-dashboard/internal/infra/newsapi"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*newsapi.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newsapi.NewClient(newsapi.Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return client, server
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := newsapi.NewClient(newsapi.Config{})
	assert.ErrorIs(t, err, newsapi.ErrAPIKeyMissing)
}

func TestFetchTopHeadlines_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotQuery map[string][]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"totalResults": 1,
			"articles": [{
				"source": {"id": "bbc-news", "name": "BBC News"},
				"author": "J. Doe",
				"title": "Headline",
				"url": "https://example.com/a",
				"publishedAt": "2024-01-15T10:00:00Z"
			}]
		}`))
	})

	articles, err := client.FetchTopHeadlines(context.Background(), "technology", "us", 100)
	require.NoError(t, err)

	assert.Equal(t, "/top-headlines", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, []string{"technology"}, gotQuery["category"])
	assert.Equal(t, []string{"us"}, gotQuery["country"])
	assert.Equal(t, []string{"100"}, gotQuery["pageSize"])

	require.Len(t, articles, 1)
	assert.Equal(t, "bbc-news", articles[0].Source.ID)
	assert.Equal(t, "Headline", articles[0].Title)
	assert.Equal(t, "2024-01-15T10:00:00Z", articles[0].PublishedAt)
}

func TestFetchEverything_DefaultsSortBy(t *testing.T) {
	var gotQuery map[string][]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"status": "ok", "totalResults": 0, "articles": []}`))
	})

	articles, err := client.FetchEverything(context.Background(), "golang", 0, "")
	require.NoError(t, err)
	assert.Empty(t, articles)

	assert.Equal(t, []string{"golang"}, gotQuery["q"])
	assert.Equal(t, []string{"publishedAt"}, gotQuery["sortBy"])
	// zero page size clamps to the upstream maximum
	assert.Equal(t, []string{"100"}, gotQuery["pageSize"])
}

func TestFetch_UpstreamRejection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid", "message": "Your API key is invalid"}`))
	})

	_, err := client.FetchTopHeadlines(context.Background(), "general", "us", 50)
	var rejected *newsapi.SourceRejectedError
	require.True(t, errors.As(err, &rejected), "want SourceRejectedError, got %v", err)
	assert.Equal(t, "apiKeyInvalid", rejected.Code)
	assert.Contains(t, rejected.Message, "invalid")
}

func TestFetch_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := newsapi.NewClient(newsapi.Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	server.Close() // connection refused from here on

	_, err = client.FetchTopHeadlines(context.Background(), "general", "us", 50)
	var unavailable *newsapi.SourceUnavailableError
	require.True(t, errors.As(err, &unavailable), "want SourceUnavailableError, got %v", err)
}

func TestFetch_MalformedResponseBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := client.FetchTopHeadlines(context.Background(), "general", "us", 50)
	var unavailable *newsapi.SourceUnavailableError
	require.True(t, errors.As(err, &unavailable), "want SourceUnavailableError, got %v", err)
}

func TestFetch_PageSizeClamped(t *testing.T) {
	var gotQuery map[string][]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"status": "ok", "totalResults": 0, "articles": []}`))
	})

	_, err := client.FetchTopHeadlines(context.Background(), "general", "us", 500)
	require.NoError(t, err)
	assert.Equal(t, []string{"100"}, gotQuery["pageSize"])
}
