// Package crawl implements the round-based crawl scheduler and the fetch
// composition it drives. The scheduler snapshots the frontier, dispatches the
// whole snapshot across a bounded worker pool, merges the links the round
// discovered into the next frontier, and repeats until a round discovers
// nothing new.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ragcrawl"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the default worker pool width for a dispatch round.
const DefaultConcurrency = 5

// Scheduler is the crawl frontier manager. Fetcher, Links, Ledger, Pages and
// Logger are required; the remaining collaborators are optional.
type Scheduler struct {
	Fetcher ragcrawl.Fetcher
	Links   ragcrawl.LinkExtractor
	Ledger  ragcrawl.VisitLedger
	Pages   ragcrawl.PageStore
	Logger  *slog.Logger

	// Limiter, when set, is awaited before every fetch.
	Limiter ragcrawl.DomainLimiter

	// Sitemaps, when set, seeds the first frontier with in-scope sitemap
	// URLs in addition to the seed URL.
	Sitemaps ragcrawl.SitemapService

	// Catalog, when set, records one visit row per fetch outcome.
	// Catalog failures are logged, never fatal to the crawl.
	Catalog ragcrawl.CatalogService

	// Concurrency is the worker pool width per round.
	// Defaults to DefaultConcurrency.
	Concurrency int

	// Progress, when set, receives an event per processed URL and one
	// final event when the crawl terminates.
	Progress ProgressFunc
}

// Result holds the outcome of a crawl.
type Result struct {
	Pages   int // fetched and stored
	Skipped int // short-circuited by the ledger
	Failed  int // both paths failed; retried on the next run
	Rounds  int
	Bytes   int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressFetched ProgressType = iota
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type  ProgressType
	URL   string
	Round int
	Bytes int
	Error error
}

// ProgressFunc is a callback for reporting crawl progress. It is invoked
// from the collection loop, never concurrently.
type ProgressFunc func(event ProgressEvent)

// fallbackReporter is implemented by fetchers that can say whether the
// browser fallback served a page (see FallbackFetcher.FetchVia).
type fallbackReporter interface {
	FetchVia(ctx context.Context, url string) (html string, fallback bool, err error)
}

// urlResult holds the outcome of processing a single dispatched URL.
type urlResult struct {
	url     string
	skipped bool
	bytes   int
	links   []string
	err     error
}

// Run crawls the site rooted at seedURL to exhaustion. Per-URL failures are
// contained and logged; the only mid-crawl abort is a browser setup failure
// (EUNAVAILABLE), honored after the round in flight completes. The fetcher
// is closed on every exit path.
func (s *Scheduler) Run(ctx context.Context, seedURL string) (*Result, error) {
	defer func() {
		if err := s.Fetcher.Close(); err != nil {
			s.Logger.Warn("closing fetcher", "err", err)
		}
	}()

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	runID, catalog := s.beginRun(ctx, seedURL)

	frontier := s.seedFrontier(ctx, seedURL)
	dispatched := make(map[string]bool)
	result := &Result{}

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Rounds++

		// Snapshot-then-dispatch: the frontier empties before any worker
		// starts, so a URL cannot be dispatched twice even when several
		// pages in flight link to it.
		round := frontier
		frontier = nil
		for _, u := range round {
			dispatched[u] = true
		}

		resultCh := make(chan urlResult, len(round))
		go func() {
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(concurrency)
			for _, u := range round {
				g.Go(func() error {
					resultCh <- s.processURL(gctx, catalog, runID, u)
					return nil
				})
			}
			_ = g.Wait()
			close(resultCh)
		}()

		var setupErr error
		next := make(map[string]bool)
		for r := range resultCh {
			switch {
			case r.skipped:
				result.Skipped++
				s.emit(ProgressEvent{Type: ProgressSkipped, URL: r.url, Round: result.Rounds})
			case r.err != nil:
				result.Failed++
				s.Logger.Warn("page failed", "url", r.url, "round", result.Rounds, "err", r.err)
				s.emit(ProgressEvent{Type: ProgressFailed, URL: r.url, Round: result.Rounds, Error: r.err})
				if ragcrawl.ErrorCode(r.err) == ragcrawl.EUNAVAILABLE {
					setupErr = r.err
				}
			default:
				result.Pages++
				result.Bytes += r.bytes
				s.Logger.Info("page fetched", "url", r.url, "round", result.Rounds, "bytes", r.bytes)
				s.emit(ProgressEvent{Type: ProgressFetched, URL: r.url, Round: result.Rounds, Bytes: r.bytes})
			}

			for _, link := range r.links {
				if dispatched[link] || next[link] || s.Ledger.Contains(link) {
					continue
				}
				next[link] = true
				frontier = append(frontier, link)
			}
		}

		if setupErr != nil {
			s.emit(ProgressEvent{Type: ProgressFinished, Round: result.Rounds})
			return result, setupErr
		}
	}

	s.Logger.Info("crawl finished",
		"pages", result.Pages,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"rounds", result.Rounds,
		"bytes", result.Bytes,
	)
	s.emit(ProgressEvent{Type: ProgressFinished, Round: result.Rounds})

	return result, nil
}

// processURL runs the per-URL state machine: ledger check, fetch, store,
// record, link extraction. All failures stay contained to the URL.
func (s *Scheduler) processURL(ctx context.Context, catalog ragcrawl.CatalogService, runID, rawURL string) urlResult {
	r := urlResult{url: rawURL}

	// Cross-restart short-circuit: a recorded URL is never re-fetched.
	if s.Ledger.Contains(rawURL) {
		r.skipped = true
		return r
	}

	if s.Limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			r.err = fmt.Errorf("parsing URL: %w", err)
			return r
		}
		if err := s.Limiter.Wait(ctx, u.Host); err != nil {
			r.err = err
			return r
		}
	}

	html, fallback, err := s.fetch(ctx, rawURL)
	if err != nil {
		r.err = err
		s.recordVisit(ctx, catalog, runID, rawURL, ragcrawl.VisitFailed, fallback, "")
		return r
	}

	if _, err := s.Pages.Save(ctx, &ragcrawl.Page{URL: rawURL, HTML: html}); err != nil {
		r.err = fmt.Errorf("saving page: %w", err)
		return r
	}

	// The ledger flush makes the page durable progress. Pages saved without
	// a ledger entry are simply overwritten on the retry.
	if err := s.Ledger.Record(rawURL, time.Now()); err != nil {
		r.err = fmt.Errorf("recording visit: %w", err)
		return r
	}

	r.bytes = len(html)
	s.recordVisit(ctx, catalog, runID, rawURL, ragcrawl.VisitFetched, fallback, html)

	links, err := s.Links.ExtractLinks(html, rawURL)
	if err != nil {
		// The page itself succeeded; losing its links only prunes discovery.
		s.Logger.Warn("link extraction failed", "url", rawURL, "err", err)
		return r
	}
	for _, link := range links {
		if !s.Ledger.Contains(link) {
			r.links = append(r.links, link)
		}
	}

	return r
}

func (s *Scheduler) fetch(ctx context.Context, rawURL string) (string, bool, error) {
	if reporter, ok := s.Fetcher.(fallbackReporter); ok {
		return reporter.FetchVia(ctx, rawURL)
	}
	html, err := s.Fetcher.Fetch(ctx, rawURL)
	return html, false, err
}

// seedFrontier builds the initial frontier: the seed URL plus, when sitemap
// seeding is configured, every in-scope sitemap URL. Sitemap failure is a
// warning, never fatal.
func (s *Scheduler) seedFrontier(ctx context.Context, seedURL string) []string {
	frontier := []string{seedURL}
	if s.Sitemaps == nil {
		return frontier
	}

	urls, err := s.Sitemaps.DiscoverURLs(ctx, seedURL)
	if err != nil {
		s.Logger.Warn("sitemap discovery failed", "url", seedURL, "err", err)
		return frontier
	}

	seen := map[string]bool{seedURL: true}
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			frontier = append(frontier, u)
		}
	}
	s.Logger.Info("sitemap seeded frontier", "urls", len(frontier))
	return frontier
}

// beginRun registers the run with the catalog. A catalog failure disables
// cataloging for the rest of the run rather than failing the crawl.
func (s *Scheduler) beginRun(ctx context.Context, seedURL string) (string, ragcrawl.CatalogService) {
	if s.Catalog == nil {
		return "", nil
	}

	run := &ragcrawl.Run{
		ID:        uuid.New().String(),
		BaseURL:   seedURL,
		StartedAt: time.Now().UTC(),
	}
	if err := s.Catalog.CreateRun(ctx, run); err != nil {
		s.Logger.Warn("catalog disabled: creating run failed", "err", err)
		return "", nil
	}
	return run.ID, s.Catalog
}

func (s *Scheduler) recordVisit(ctx context.Context, catalog ragcrawl.CatalogService, runID, rawURL, status string, fallback bool, html string) {
	if catalog == nil {
		return
	}

	visit := &ragcrawl.Visit{
		RunID:     runID,
		URL:       rawURL,
		Status:    status,
		Fallback:  fallback,
		Bytes:     len(html),
		FetchedAt: time.Now().UTC(),
	}
	if html != "" {
		visit.ContentHash = contentHash(html)
	}
	if err := catalog.CreateVisit(ctx, visit); err != nil {
		s.Logger.Warn("catalog visit failed", "url", rawURL, "err", err)
	}
}

func (s *Scheduler) emit(event ProgressEvent) {
	if s.Progress != nil {
		s.Progress(event)
	}
}

// contentHash computes a hex xxhash of the content.
func contentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
