// Package http provides the primary HTTP implementation of ragcrawl.Fetcher,
// with transport-level retry for transient server errors and connection
// failures, plus sitemap discovery for frontier seeding.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/ragcrawl"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the crawler as a desktop browser. Some sites
// serve reduced or blocked content to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// RetryPolicy controls transport-level retries for transient failures:
// retryable server statuses and network-layer errors such as timeouts and
// connection resets. Requests are idempotent GETs, so reissuing is safe.
// Exhaustion surfaces the last failure and callers route it to the browser
// fallback.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// BackoffFactor scales the delay between attempts:
	// factor × 2^(n-1) after the nth failure.
	BackoffFactor time.Duration

	// RetryableStatuses are the response codes worth retrying.
	RetryableStatuses []int
}

// DefaultRetryPolicy returns the standard policy: five attempts with
// 100ms-based exponential backoff on 500, 502, 503 and 504.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   5,
		BackoffFactor: 100 * time.Millisecond,
		RetryableStatuses: []int{
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

func (p RetryPolicy) retryable(status int) bool {
	for _, s := range p.RetryableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// backoff returns the delay after the nth failed attempt (1-based).
func (p RetryPolicy) backoff(n int) time.Duration {
	return p.BackoffFactor * (1 << (n - 1))
}

// retryTransport retries GETs per a RetryPolicy. Transport errors and
// retryable statuses count against the same attempt budget; discarded
// responses are drained so connections are reused.
type retryTransport struct {
	base   http.RoundTripper
	policy RetryPolicy
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for attempt := 1; ; attempt++ {
		resp, err := t.base.RoundTrip(req)
		if err == nil && !t.policy.retryable(resp.StatusCode) {
			return resp, nil
		}
		if attempt >= t.policy.MaxAttempts {
			return resp, err
		}

		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(t.policy.backoff(attempt)):
		}
	}
}

// Ensure Fetcher implements ragcrawl.Fetcher at compile time.
var _ ragcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for static pages only.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	policy    RetryPolicy
	transport http.RoundTripper
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests. The timeout spans the
// whole exchange, retries and backoff sleeps included, so a policy with
// many attempts needs a proportionally larger timeout to exercise them
// all against a slow server. Defaults to DefaultFetchTimeout (10s).
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(f *Fetcher) {
		f.policy = p
	}
}

// WithTransport replaces the underlying round tripper. The retry policy
// still applies on top, which makes retry behavior testable with a fake
// transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		policy:    DefaultRetryPolicy(),
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: &retryTransport{base: f.transport, policy: f.policy},
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// A non-200 response after retries is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
