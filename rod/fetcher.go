// Package rod provides a browser-backed ragcrawl.Fetcher for pages the plain
// HTTP path cannot serve: JavaScript-rendered content and anti-bot defenses
// that reject non-browser clients.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/ragcrawl"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds navigation plus the wait for the page body.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements ragcrawl.Fetcher at compile time.
var _ ragcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-fetch timeout covering navigation and the
// wait for the body element. Defaults to DefaultFetchTimeout (10s).
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL, waits for the page body to appear, and returns
// the rendered document source. The wait is bounded by the fetch timeout.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.manager.Closed() {
		return "", ragcrawl.Errorf(ragcrawl.EINVALID, "fetcher is closed")
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("creating page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.timeout)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}

	// A rendered page always has a body; waiting for it filters out blank
	// interstitials without depending on site-specific markup.
	if _, err := page.Element("body"); err != nil {
		return "", fmt.Errorf("waiting for page body at %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()

	return html, nil
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Safe to call more than once.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
