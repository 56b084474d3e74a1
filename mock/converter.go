package mock

import "github.com/fwojciec/ragcrawl"

var _ ragcrawl.Converter = (*Converter)(nil)

// Converter is a mock implementation of ragcrawl.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
