package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/ragcrawl"
	"golang.org/x/time/rate"
)

// DefaultRPS is the default request rate per host, applied when no rate is
// configured. Two requests per second keeps a single-site crawl polite on
// top of the post-fetch jitter.
const DefaultRPS = 2.0

var _ ragcrawl.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter rate-limits fetches per host with one token bucket each.
// Burst is fixed at 1: a round that just discovered twenty links on one
// host must still space its requests, while hosts reached through sitemap
// seeding proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// per host. A rate of zero or less falls back to DefaultRPS.
func NewDomainLimiter(rps float64) *DomainLimiter {
	if rps <= 0 {
		rps = DefaultRPS
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the host's bucket allows a request, or the context is
// canceled. The first request to a host proceeds immediately.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
