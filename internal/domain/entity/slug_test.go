package entity_test

import (
	"testing"

	"news-dashboard/internal/domain/entity"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Technology", "technology"},
		{"Daily Times", "daily-times"},
		{"BBC News", "bbc-news"},
		{"  padded  name  ", "padded-name"},
		{"ABC (AU)", "abc-au"},
		{"already-a-slug", "already-a-slug"},
		{"Über News", "über-news"},
		{"!!!", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := entity.Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolveSourceID(t *testing.T) {
	cases := []struct {
		name       string
		externalID string
		srcName    string
		want       string
	}{
		{"external id wins", "bbc-news", "BBC News", "bbc-news"},
		{"slug fallback", "", "Daily Times", "daily-times"},
		{"unknown fallback", "", "", "unknown"},
		{"unslugifiable name", "", "???", "unknown"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := entity.ResolveSourceID(c.externalID, c.srcName); got != c.want {
				t.Fatalf("ResolveSourceID(%q, %q) = %q, want %q", c.externalID, c.srcName, got, c.want)
			}
		})
	}
}
