package ragcrawl

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content or anti-bot defenses.
type Fetcher interface {
	// Fetch retrieves the document at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher, such as a
	// browser instance. Must be called when the Fetcher is no longer
	// needed and is safe to call more than once.
	Close() error
}
