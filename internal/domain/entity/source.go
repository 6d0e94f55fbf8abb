package entity

// Source represents a news publisher (BBC News, CNN, ...).
// SourceID is the upstream API identifier and the identity key; when the
// upstream record carries no id, a slug of the publisher name is used as a
// fallback, or the literal "unknown" when the name is empty too.
// Sources are created lazily on first reference and never mutated by the
// pipeline afterwards.
type Source struct {
	ID          int64
	SourceID    string
	Name        string
	Description string
	URL         string
	Country     string
	Language    string
}

// FallbackSourceID is the identity used when an upstream record has neither
// a source id nor a source name to derive one from.
const FallbackSourceID = "unknown"

// ResolveSourceID returns the identity key for a source given the upstream
// id and name. Preference order: upstream id, slugified name, "unknown".
func ResolveSourceID(externalID, name string) string {
	if externalID != "" {
		return externalID
	}
	if slug := Slugify(name); slug != "" {
		return slug
	}
	return FallbackSourceID
}
