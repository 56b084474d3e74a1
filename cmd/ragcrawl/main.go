package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ragcrawl"
	"github.com/fwojciec/ragcrawl/crawl"
	"github.com/fwojciec/ragcrawl/fs"
	"github.com/fwojciec/ragcrawl/goquery"
	"github.com/fwojciec/ragcrawl/htmltomarkdown"
	raghttp "github.com/fwojciec/ragcrawl/http"
	"github.com/fwojciec/ragcrawl/rod"
	ragslog "github.com/fwojciec/ragcrawl/slog"
	"github.com/fwojciec/ragcrawl/sqlite"
	"github.com/fwojciec/ragcrawl/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ragcrawl"),
		kong.Description("Crawl a documentation site and chunk its content for RAG"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	timeout := cli.Timeout

	// Primary HTTP fetcher, logged. The logging decorator wraps the primary
	// path only so the fallback composition keeps its provenance report.
	primary := ragslog.NewLoggingFetcher(raghttp.NewFetcher(raghttp.WithTimeout(timeout)), logger)

	deps.Fetcher = &crawl.FallbackFetcher{
		Primary: primary,
		Browser: func() (ragcrawl.Fetcher, error) {
			f, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return nil, err
			}
			return f, nil
		},
		Jitter: crawl.NewJitter(),
		Logger: logger,
	}

	deps.Ledger = fs.OpenLedger(cli.Ledger, logger)
	deps.Pages = fs.NewPageStore(cli.Pages)
	deps.Links = goquery.NewLinkExtractor(cli.URL)
	deps.Limiter = crawl.NewDomainLimiter(cli.RPS)

	if cli.Sitemap {
		deps.Sitemaps = ragslog.NewLoggingSitemapService(raghttp.NewSitemapService(nil), logger)
	}

	if cli.Catalog != "" {
		db := sqlite.NewDB(cli.Catalog)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open catalog at %q: %w", cli.Catalog, err)
		}
		defer db.Close()
		deps.Catalog = sqlite.NewCatalogService(db)
	}

	deps.Extractor = trafilatura.NewExtractor()
	if cli.Markdown != "" {
		deps.Converter = htmltomarkdown.NewConverter()
		deps.Documents = fs.NewWriter(cli.Markdown)
	}

	cmd := &PipelineCmd{
		URL:         cli.URL,
		Pages:       cli.Pages,
		Cleaned:     cli.Cleaned,
		Chunks:      cli.Chunks,
		ChunkSize:   cli.ChunkSize,
		Concurrency: cli.Concurrency,
	}

	return cmd.Run(deps)
}
