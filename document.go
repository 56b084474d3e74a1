package ragcrawl

import (
	"context"
	"time"
)

// Document is the extracted, markdown-rendered form of one stored page.
// Documents exist only when the markdown mirror is enabled; the CSV outputs
// are the canonical pipeline artifacts.
type Document struct {
	File        string    `json:"file"` // stored page path the document came from
	Title       string    `json:"title"`
	Content     string    `json:"content"` // Markdown
	ExtractedAt time.Time `json:"extractedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.File == "" {
		return Errorf(EINVALID, "document file required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// DocumentWriter writes documents to storage.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}
