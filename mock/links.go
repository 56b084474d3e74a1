package mock

import "github.com/fwojciec/ragcrawl"

var _ ragcrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of ragcrawl.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, pageURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html, pageURL string) ([]string, error) {
	return e.ExtractLinksFn(html, pageURL)
}
