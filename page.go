package ragcrawl

import "context"

// Page represents a fetched page: the raw HTML plus its source URL.
// Pages are persisted once by a PageStore and immutable thereafter.
type Page struct {
	URL  string
	HTML string
}

// PageStore persists raw page captures, addressed deterministically by URL.
type PageStore interface {
	// Save writes the page under a filesystem-safe path derived from its
	// URL and returns that path relative to the store root. Saving the
	// same URL twice overwrites silently.
	Save(ctx context.Context, page *Page) (path string, err error)
}
