package entity_test

import (
	"testing"

	"news-dashboard/internal/domain/entity"
)

func TestValidateURL_ok(t *testing.T) {
	for _, u := range []string{
		"https://example.com/news/1",
		"http://example.com",
		"https://example.com/path?q=go&page=2",
	} {
		if err := entity.ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", u, err)
		}
	}
}

func TestValidateURL_reject(t *testing.T) {
	for _, u := range []string{
		"",
		"   ",
		"ftp://example.com/file",
		"javascript:alert(1)",
		"/relative/path",
		"https://",
	} {
		if err := entity.ValidateURL(u); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", u)
		}
	}
}
