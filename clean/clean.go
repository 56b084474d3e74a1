// Package clean implements the post-crawl extraction stage: it walks the
// stored page captures, strips boilerplate from each, normalizes whitespace
// and writes the flat cleaned-data record set.
package clean

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/ragcrawl"
)

// Cleaner reads stored pages and emits one cleaned record per page that
// yields content. Extractor and Logger are required; Converter and Documents
// together enable the optional markdown mirror.
type Cleaner struct {
	Extractor ragcrawl.Extractor
	Logger    *slog.Logger

	// Converter and Documents, when both set, mirror each page's extracted
	// content as a markdown file. Mirror failures are warnings.
	Converter ragcrawl.Converter
	Documents ragcrawl.DocumentWriter
}

// Result holds the outcome of an extraction pass.
type Result struct {
	Records int // pages that yielded content
	Skipped int // pages with no extractable content
	Failed  int // unreadable pages or extractor errors
}

// Run walks inputDir for stored pages in lexical order and writes one record
// per page with extractable content. Per-page failures and empty yields are
// logged and skipped; only walk and output errors are fatal.
func (c *Cleaner) Run(ctx context.Context, inputDir string, out ragcrawl.CleanWriter) (*Result, error) {
	result := &Result{}

	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			rel = path
		}

		content, ok := c.extractPage(ctx, path, rel, result)
		if !ok {
			return nil
		}

		result.Records++
		return out.WriteClean(&ragcrawl.CleanRecord{File: rel, Content: content})
	})
	if err != nil {
		return result, err
	}

	c.Logger.Info("extraction finished",
		"records", result.Records,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)

	return result, nil
}

// extractPage reads and extracts one stored page, updating the failure and
// skip counters. The bool result reports whether the page yielded content.
func (c *Cleaner) extractPage(ctx context.Context, path, rel string, result *Result) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		result.Failed++
		c.Logger.Warn("page unreadable", "file", rel, "err", err)
		return "", false
	}

	extracted, err := c.Extractor.Extract(string(raw))
	if err != nil {
		result.Failed++
		c.Logger.Warn("extraction failed", "file", rel, "err", err)
		return "", false
	}

	content := ragcrawl.NormalizeText(extracted.ContentText)
	if content == "" {
		result.Skipped++
		c.Logger.Warn("no extractable content", "file", rel)
		return "", false
	}

	c.mirror(ctx, rel, extracted)

	return content, true
}

// mirror writes the page's extracted content as a markdown file when the
// mirror is configured.
func (c *Cleaner) mirror(ctx context.Context, rel string, extracted *ragcrawl.ExtractResult) {
	if c.Converter == nil || c.Documents == nil || extracted.ContentHTML == "" {
		return
	}

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		c.Logger.Warn("markdown conversion failed", "file", rel, "err", err)
		return
	}

	doc := &ragcrawl.Document{
		File:        rel,
		Title:       extracted.Title,
		Content:     markdown,
		ExtractedAt: time.Now().UTC(),
	}
	if err := c.Documents.CreateDocument(ctx, doc); err != nil {
		c.Logger.Warn("markdown mirror failed", "file", rel, "err", err)
	}
}
