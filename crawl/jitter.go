package crawl

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Default jitter bounds. The start delay desynchronizes process launches;
// the politeness delay spaces successive fetches beyond retry backoff.
const (
	DefaultStartDelayMin      = 2 * time.Second
	DefaultStartDelayMax      = 5 * time.Second
	DefaultPolitenessDelayMin = 1 * time.Second
	DefaultPolitenessDelayMax = 3 * time.Second
)

// Jitter inserts randomized delays around fetches: a one-time start delay
// before the first request of the process lifetime and a politeness delay
// after every successful fetch. The sleep function is injectable for tests.
//
// Jitter is safe for concurrent use.
type Jitter struct {
	StartMin time.Duration
	StartMax time.Duration
	PauseMin time.Duration
	PauseMax time.Duration

	// Sleep waits for d or until the context is canceled. Defaults to a
	// timer-based wait.
	Sleep func(ctx context.Context, d time.Duration) error

	startOnce sync.Once
}

// NewJitter creates a Jitter with the default bounds.
func NewJitter() *Jitter {
	return &Jitter{
		StartMin: DefaultStartDelayMin,
		StartMax: DefaultStartDelayMax,
		PauseMin: DefaultPolitenessDelayMin,
		PauseMax: DefaultPolitenessDelayMax,
	}
}

// Start applies the randomized start delay. Only the first call sleeps;
// subsequent calls return immediately.
func (j *Jitter) Start(ctx context.Context) error {
	var err error
	j.startOnce.Do(func() {
		err = j.sleep(ctx, j.StartMin, j.StartMax)
	})
	return err
}

// Pause applies the randomized politeness delay.
func (j *Jitter) Pause(ctx context.Context) error {
	return j.sleep(ctx, j.PauseMin, j.PauseMax)
}

func (j *Jitter) sleep(ctx context.Context, min, max time.Duration) error {
	d := min
	if max > min {
		d += rand.N(max - min)
	}
	if d <= 0 {
		return ctx.Err()
	}
	if j.Sleep != nil {
		return j.Sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
