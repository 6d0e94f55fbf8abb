// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article, Source and Category,
// along with their validation rules and domain-specific errors.
package entity

import "time"

// Field length limits applied during ingestion. Records coming from the
// upstream news API occasionally carry absurdly long author/title strings;
// anything beyond these limits is truncated, not rejected.
const (
	MaxAuthorLen = 500
	MaxTitleLen  = 1000
)

// Article represents a single news article ingested from the upstream API.
// The URL is the global deduplication key: two ingestions of the same URL
// must never produce two rows. SourceID and CategoryID are nullable weak
// references; a keyword-search ingestion has no category context and some
// upstream records carry no identifiable source.
type Article struct {
	ID          int64
	SourceID    *int64
	CategoryID  *int64
	SourceName  string
	Author      string
	Title       string
	Description string
	URL         string
	URLToImage  string
	PublishedAt time.Time
	Content     string
	Country     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
