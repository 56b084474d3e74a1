package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/ragcrawl"
)

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *ragcrawl.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.File)
	b.WriteString("\ntitle: ")
	b.WriteString(doc.Title)
	b.WriteString("\nextracted: ")
	b.WriteString(doc.ExtractedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// Ensure Writer implements ragcrawl.DocumentWriter at compile time.
var _ ragcrawl.DocumentWriter = (*Writer)(nil)

// Writer writes documents as markdown files to a directory, mirroring the
// page store layout with .md in place of .html.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateDocument writes a document to disk as a markdown file.
func (w *Writer) CreateDocument(ctx context.Context, doc *ragcrawl.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath := strings.TrimSuffix(doc.File, ".html") + ".md"
	fullPath := filepath.Join(w.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content := FormatDocument(doc)
	return os.WriteFile(fullPath, []byte(content), 0644)
}
