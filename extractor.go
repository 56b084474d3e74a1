package ragcrawl

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// ContentText is the main content as plain text, before whitespace
	// normalization. Empty when the page has no extractable content.
	ContentText string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// The title comes from page metadata (meta tags, JSON+LD, etc.).
	// A page with no extractable content returns a result with empty
	// text, not an error.
	Extract(html string) (*ExtractResult, error)
}
