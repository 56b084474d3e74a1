package ragcrawl

// LinkExtractor finds crawlable links in a page.
// Implementations are configured with the crawl's base URL and return only
// links that resolve inside it.
type LinkExtractor interface {
	// ExtractLinks parses html and returns the absolute form of every
	// in-scope link, deduplicated, in document order. Hrefs are resolved
	// against pageURL; fragments are stripped before the scope test.
	// Malformed hrefs are skipped, never an error.
	ExtractLinks(html, pageURL string) ([]string, error)
}
