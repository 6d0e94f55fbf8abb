package ingest

import (
	"fmt"
	"time"
	"unicode/utf8"

	"news-dashboard/internal/domain/entity"
	"news-dashboard/internal/infra/newsapi"
)

// NormalizedArticle is the canonical shape of one external record after
// normalization. All text fields are non-null (absent values become "");
// the embedded source sub-record is carried through untouched for the
// store step to resolve.
type NormalizedArticle struct {
	Source      newsapi.RawSource
	Author      string
	Title       string
	Description string
	URL         string
	URLToImage  string
	PublishedAt time.Time
	Content     string
}

// Normalize maps a raw external record into its canonical shape, or reports
// why the record must be discarded. Rules, applied in order:
//
//  1. No URL: ErrMissingURL (nothing to key on).
//  2. URL not an absolute http(s) URL: ErrInvalidURL.
//  3. publishedAt missing or not RFC 3339: ErrInvalidPublishedAt.
//  4. author is truncated to 500 characters, title to 1000.
//
// Normalize is pure: it never touches the network or the store.
func Normalize(raw newsapi.RawArticle) (*NormalizedArticle, error) {
	if raw.URL == "" {
		return nil, ErrMissingURL
	}
	if err := entity.ValidateURL(raw.URL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	publishedAt, err := time.Parse(time.RFC3339, raw.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPublishedAt, raw.PublishedAt)
	}

	return &NormalizedArticle{
		Source:      raw.Source,
		Author:      truncate(raw.Author, entity.MaxAuthorLen),
		Title:       truncate(raw.Title, entity.MaxTitleLen),
		Description: raw.Description,
		URL:         raw.URL,
		URLToImage:  raw.URLToImage,
		PublishedAt: publishedAt,
		Content:     raw.Content,
	}, nil
}

// truncate bounds s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
