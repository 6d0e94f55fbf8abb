package pathutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-dashboard/internal/handler/http/pathutil"
)

func TestExtractID(t *testing.T) {
	id, err := pathutil.ExtractID("/articles/123", "/articles/")
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)
}

func TestExtractID_Invalid(t *testing.T) {
	cases := []string{"/articles/abc", "/articles/", "/articles/0", "/articles/-5"}
	for _, path := range cases {
		_, err := pathutil.ExtractID(path, "/articles/")
		assert.ErrorIs(t, err, pathutil.ErrInvalidID, "path %s", path)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/articles/123", "/articles/:id"},
		{"/articles/123/", "/articles/:id"},
		{"/articles/123?page=2", "/articles/:id"},
		{"/articles", "/articles"},
		{"/categories", "/categories"},
		{"/sources", "/sources"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pathutil.NormalizePath(tt.in), "path %s", tt.in)
	}
}
