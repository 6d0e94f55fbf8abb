package entity

import (
	"strings"
	"unicode"
)

// Slugify converts an arbitrary label into a URL-safe slug: lowercase
// alphanumerics with single hyphens between words. Returns "" when nothing
// usable remains ("!!!" slugifies to "").
//
// Examples:
//   - "Technology"  -> "technology"
//   - "Daily Times" -> "daily-times"
//   - "ABC (AU)"    -> "abc-au"
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevHyphen := true // suppress leading hyphens
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
