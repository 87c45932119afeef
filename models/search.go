package models

// SearchMode selects how a search request is interpreted.
type SearchMode string

const (
	// SearchModeText matches the term against the item's text fields.
	SearchModeText SearchMode = "text"

	// SearchModeImage ignores the term and lists items with an image.
	SearchModeImage SearchMode = "image"
)

// SearchRequest is a search over the caller's own items.
type SearchRequest struct {
	Term string
	Mode SearchMode
}

// PageRequest is an offset/limit window over the caller's items.
type PageRequest struct {
	Offset int
	Limit  int
}
