package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL checks that a string is an absolute http(s) URL with a host.
// Ingestion calls it before keying a row on the URL.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &ValidationError{Field: "url", Message: "is required"}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("is not a valid URL: %v", err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "must use http or https"}
	}
	if u.Host == "" {
		return &ValidationError{Field: "url", Message: "must include a host"}
	}
	return nil
}
