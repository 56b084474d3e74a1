package crawl

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fwojciec/ragcrawl"
)

// Ensure FallbackFetcher implements ragcrawl.Fetcher at compile time.
var _ ragcrawl.Fetcher = (*FallbackFetcher)(nil)

// FallbackFetcher composes the primary HTTP fetcher with a lazily created
// browser fetcher. Any primary error routes the URL to the browser, whether
// a non-retryable status or a retry budget exhausted by server errors and
// connection failures. The browser is constructed on first need and reused
// for the rest of the process; browser fetches are serialized since a
// single instance is shared.
type FallbackFetcher struct {
	// Primary is tried first for every URL.
	Primary ragcrawl.Fetcher

	// Browser constructs the fallback fetcher on first need. The result,
	// or the construction error, is memoized.
	Browser func() (ragcrawl.Fetcher, error)

	// Jitter, when set, applies the start and politeness delays.
	Jitter *Jitter

	Logger *slog.Logger

	mu         sync.Mutex // guards lazy construction
	browser    ragcrawl.Fetcher
	browserErr error
	started    bool

	fetchMu sync.Mutex // serializes browser fetches
}

// Fetch retrieves the URL via the primary path, falling back to the browser.
func (f *FallbackFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, _, err := f.FetchVia(ctx, url)
	return html, err
}

// FetchVia is Fetch plus a report of whether the browser fallback served the
// page, for callers that record fetch provenance.
func (f *FallbackFetcher) FetchVia(ctx context.Context, url string) (html string, fallback bool, err error) {
	if f.Jitter != nil {
		if err := f.Jitter.Start(ctx); err != nil {
			return "", false, err
		}
	}

	html, err = f.Primary.Fetch(ctx, url)
	if err == nil {
		return html, false, f.pause(ctx)
	}

	f.logger().Debug("primary fetch failed, trying browser fallback", "url", url, "err", err)

	browser, err := f.acquireBrowser()
	if err != nil {
		return "", false, err
	}

	f.fetchMu.Lock()
	html, err = browser.Fetch(ctx, url)
	f.fetchMu.Unlock()
	if err != nil {
		return "", true, err
	}

	return html, true, f.pause(ctx)
}

// acquireBrowser constructs the browser fetcher on first call and memoizes
// the outcome. A construction failure is an unrecoverable setup failure,
// reported as EUNAVAILABLE so the scheduler can abort the run.
func (f *FallbackFetcher) acquireBrowser() (ragcrawl.Fetcher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.started {
		f.started = true
		browser, err := f.Browser()
		if err != nil {
			f.browserErr = ragcrawl.Errorf(ragcrawl.EUNAVAILABLE, "starting browser: %v", err)
		} else {
			f.browser = browser
		}
	}
	if f.browserErr != nil {
		return nil, f.browserErr
	}
	return f.browser, nil
}

func (f *FallbackFetcher) pause(ctx context.Context) error {
	if f.Jitter == nil {
		return nil
	}
	return f.Jitter.Pause(ctx)
}

func (f *FallbackFetcher) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.Default()
}

// Close releases the primary fetcher and the browser, if one was created.
// Safe to call more than once.
func (f *FallbackFetcher) Close() error {
	f.mu.Lock()
	browser := f.browser
	f.browser = nil
	f.mu.Unlock()

	err := f.Primary.Close()
	if browser != nil {
		if cerr := browser.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
