// Package newsapi implements the client for the NewsAPI.org upstream.
//
// The client issues single-page, bounded-timeout requests and never retries
// on its own; retry policy belongs to the caller. Requests pass through a
// client-side rate limiter and a circuit breaker before hitting the wire.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"news-dashboard/internal/resilience/circuitbreaker"
)

const (
	// MaxPageSize is the largest page the upstream accepts.
	MaxPageSize = 100

	// DefaultSortBy orders keyword search results by publication time.
	DefaultSortBy = "publishedAt"

	statusOK = "ok"
)

// Config is the immutable client configuration. The API key is fixed at
// construction; there is no mutable session state.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	// RequestsPerSecond caps outbound request rate. Zero disables limiting.
	RequestsPerSecond float64
}

// RawSource is the source sub-record embedded in an upstream article,
// carried through normalization untouched.
type RawSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RawArticle is one untyped upstream record. Absent fields decode to "".
type RawArticle struct {
	Source      RawSource `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt string    `json:"publishedAt"`
	Content     string    `json:"content"`
}

// envelope is the upstream response payload. On success Status is "ok";
// on logical errors Status is "error" and Code/Message describe it.
type envelope struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []RawArticle `json:"articles"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
}

// Client talks to the upstream news API.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
}

// NewClient builds a client from the given configuration.
// Returns ErrAPIKeyMissing when no API key is set.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://newsapi.org/v2"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		breaker: circuitbreaker.New(circuitbreaker.NewsAPIConfig()),
	}, nil
}

// FetchTopHeadlines retrieves the current headlines for a category/country
// pair. Only the first page is requested.
func (c *Client) FetchTopHeadlines(ctx context.Context, category, country string, pageSize int) ([]RawArticle, error) {
	params := url.Values{}
	params.Set("category", category)
	params.Set("country", country)
	params.Set("pageSize", strconv.Itoa(clampPageSize(pageSize)))

	return c.fetch(ctx, "/top-headlines", params)
}

// FetchEverything retrieves articles matching a free-text query, independent
// of category. sortBy defaults to publishedAt.
func (c *Client) FetchEverything(ctx context.Context, query string, pageSize int, sortBy string) ([]RawArticle, error) {
	if sortBy == "" {
		sortBy = DefaultSortBy
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sortBy", sortBy)
	params.Set("pageSize", strconv.Itoa(clampPageSize(pageSize)))

	return c.fetch(ctx, "/everything", params)
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]RawArticle, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &SourceUnavailableError{Err: err}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, path, params)
	})
	if err != nil {
		// Rejections carry an upstream message and pass through unchanged;
		// everything else (transport, timeout, open breaker) is unavailability.
		var rejected *SourceRejectedError
		if errors.As(err, &rejected) {
			return nil, rejected
		}
		var unavailable *SourceUnavailableError
		if errors.As(err, &unavailable) {
			return nil, unavailable
		}
		return nil, &SourceUnavailableError{Err: err}
	}

	return result.([]RawArticle), nil
}

func (c *Client) doRequest(ctx context.Context, path string, params url.Values) ([]RawArticle, error) {
	endpoint := c.cfg.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("doRequest: %w", err)
	}
	req.Header.Set("X-Api-Key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &SourceUnavailableError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SourceUnavailableError{Err: err}
	}

	var payload envelope
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &SourceUnavailableError{
			Err: fmt.Errorf("unexpected response (HTTP %d): %w", resp.StatusCode, err),
		}
	}

	if payload.Status != statusOK {
		return nil, &SourceRejectedError{Code: payload.Code, Message: payload.Message}
	}

	return payload.Articles, nil
}

func clampPageSize(pageSize int) int {
	if pageSize <= 0 || pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}
