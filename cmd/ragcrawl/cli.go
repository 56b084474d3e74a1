package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/ragcrawl"
	"github.com/fwojciec/ragcrawl/chunk"
	"github.com/fwojciec/ragcrawl/clean"
	"github.com/fwojciec/ragcrawl/crawl"
	"github.com/fwojciec/ragcrawl/csv"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL         string        `arg:"" required:"" help:"Base URL to crawl; only pages under it are followed"`
	Pages       string        `default:"pages" help:"Directory for raw page captures"`
	Ledger      string        `default:"visited_urls.json" help:"Path to the visit ledger file"`
	Cleaned     string        `default:"cleaned_data.csv" help:"Path for the extracted-content CSV"`
	Chunks      string        `default:"rag_chunks.csv" help:"Path for the chunked output CSV"`
	ChunkSize   int           `default:"1000" help:"Maximum chunk size in characters"`
	Concurrency int           `short:"c" default:"5" help:"Concurrent fetch limit per round"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	RPS         float64       `default:"2" help:"Max requests per second per host"`
	Sitemap     bool          `help:"Seed the crawl from the site's sitemap"`
	Catalog     string        `placeholder:"PATH" help:"Record fetch outcomes in a SQLite catalog at PATH"`
	Markdown    string        `placeholder:"DIR" help:"Mirror extracted content as markdown files under DIR"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher   ragcrawl.Fetcher
	Links     ragcrawl.LinkExtractor
	Ledger    ragcrawl.VisitLedger
	Pages     ragcrawl.PageStore
	Limiter   ragcrawl.DomainLimiter
	Sitemaps  ragcrawl.SitemapService
	Catalog   ragcrawl.CatalogService
	Extractor ragcrawl.Extractor
	Converter ragcrawl.Converter
	Documents ragcrawl.DocumentWriter
}

// PipelineCmd runs crawl, extraction and chunking in fixed order.
type PipelineCmd struct {
	URL         string
	Pages       string
	Cleaned     string
	Chunks      string
	ChunkSize   int
	Concurrency int
}

// Run executes the full pipeline against the configured dependencies.
func (cmd *PipelineCmd) Run(deps *Dependencies) error {
	crawlResult, err := cmd.runCrawl(deps)
	if err != nil {
		return err
	}

	cleanResult, err := cmd.runClean(deps)
	if err != nil {
		return err
	}

	chunkResult, err := cmd.runChunk(deps)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: crawled %d pages (%d skipped, %d failed) in %d rounds, extracted %d records, wrote %d chunks.\n",
		crawlResult.Pages, crawlResult.Skipped, crawlResult.Failed, crawlResult.Rounds,
		cleanResult.Records, chunkResult.Chunks)
	return nil
}

func (cmd *PipelineCmd) runCrawl(deps *Dependencies) (*crawl.Result, error) {
	scheduler := &crawl.Scheduler{
		Fetcher:     deps.Fetcher,
		Links:       deps.Links,
		Ledger:      deps.Ledger,
		Pages:       deps.Pages,
		Logger:      deps.Logger,
		Limiter:     deps.Limiter,
		Sitemaps:    deps.Sitemaps,
		Catalog:     deps.Catalog,
		Concurrency: cmd.Concurrency,
		Progress:    cmd.progress(deps.Stderr),
	}

	result, err := scheduler.Run(deps.Ctx, cmd.URL)
	if err != nil {
		return nil, fmt.Errorf("crawl failed: %w", err)
	}
	return result, nil
}

func (cmd *PipelineCmd) runClean(deps *Dependencies) (*clean.Result, error) {
	out, err := csv.NewCleanWriter(cmd.Cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to create %q: %w", cmd.Cleaned, err)
	}

	cleaner := &clean.Cleaner{
		Extractor: deps.Extractor,
		Logger:    deps.Logger,
		Converter: deps.Converter,
		Documents: deps.Documents,
	}

	result, err := cleaner.Run(deps.Ctx, cmd.Pages, out)
	if err != nil {
		out.Close()
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to write %q: %w", cmd.Cleaned, err)
	}
	return result, nil
}

func (cmd *PipelineCmd) runChunk(deps *Dependencies) (*chunk.Result, error) {
	out, err := csv.NewChunkWriter(cmd.Chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to create %q: %w", cmd.Chunks, err)
	}

	chunker := &chunk.Chunker{Logger: deps.Logger}

	result, err := chunker.Run(deps.Ctx, csv.NewCleanReader(cmd.Cleaned), out, cmd.ChunkSize)
	if err != nil {
		out.Close()
		return nil, fmt.Errorf("chunking failed: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to write %q: %w", cmd.Chunks, err)
	}
	return result, nil
}

// progress prints one line per processed URL to stderr.
func (cmd *PipelineCmd) progress(w io.Writer) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressFetched:
			fmt.Fprintf(w, "fetched %s (%d bytes)\n", event.URL, event.Bytes)
		case crawl.ProgressSkipped:
			fmt.Fprintf(w, "skipped %s (already visited)\n", event.URL)
		case crawl.ProgressFailed:
			fmt.Fprintf(w, "failed %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
			fmt.Fprintf(w, "crawl finished after %d rounds\n", event.Round)
		}
	}
}
