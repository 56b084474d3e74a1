package mock

import (
	"context"

	"github.com/fwojciec/ragcrawl"
)

var _ ragcrawl.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of ragcrawl.PageStore.
type PageStore struct {
	SaveFn func(ctx context.Context, page *ragcrawl.Page) (string, error)
}

func (s *PageStore) Save(ctx context.Context, page *ragcrawl.Page) (string, error) {
	return s.SaveFn(ctx, page)
}
