package pagination

// Metadata is the pagination block attached to list responses.
type Metadata struct {
	// Total is the number of items across all pages, not just this one.
	Total int64 `json:"total"`

	// Page is the 1-based page number that was served.
	Page int `json:"page"`

	// Limit is the page size that was applied.
	Limit int `json:"limit"`

	// TotalPages is derived from Total and Limit, never less than 1.
	TotalPages int `json:"total_pages"`
}
