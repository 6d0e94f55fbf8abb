package entity

// Category represents a news category (business, technology, sports, ...).
// Categories are created lazily the first time an ingestion run references
// them and are never mutated or deleted by the pipeline. The slug is the
// identity key; Name is the title-cased display form.
type Category struct {
	ID   int64
	Name string
	Slug string
}
