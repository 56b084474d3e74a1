package mock

import (
	"context"

	"github.com/fwojciec/ragcrawl"
)

var _ ragcrawl.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of ragcrawl.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *ragcrawl.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *ragcrawl.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}
