package ingest

import "errors"

var (
	// ErrMissingURL marks a record with no URL; there is nothing to key on.
	ErrMissingURL = errors.New("record has no url")

	// ErrInvalidURL marks a record whose URL is not an absolute http(s)
	// URL; such a value cannot serve as the dedup key.
	ErrInvalidURL = errors.New("record has an invalid url")

	// ErrInvalidPublishedAt marks a record whose publishedAt is missing or
	// not parseable as an RFC 3339 timestamp.
	ErrInvalidPublishedAt = errors.New("record has missing or unparseable publishedAt")
)
