package mock

import "github.com/fwojciec/ragcrawl"

var _ ragcrawl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ragcrawl.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*ragcrawl.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*ragcrawl.ExtractResult, error) {
	return e.ExtractFn(html)
}
