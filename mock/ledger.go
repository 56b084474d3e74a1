package mock

import (
	"time"

	"github.com/fwojciec/ragcrawl"
)

var _ ragcrawl.VisitLedger = (*VisitLedger)(nil)

// VisitLedger is a mock implementation of ragcrawl.VisitLedger.
type VisitLedger struct {
	ContainsFn func(url string) bool
	RecordFn   func(url string, visitedAt time.Time) error
	LenFn      func() int
}

func (l *VisitLedger) Contains(url string) bool {
	return l.ContainsFn(url)
}

func (l *VisitLedger) Record(url string, visitedAt time.Time) error {
	return l.RecordFn(url, visitedAt)
}

func (l *VisitLedger) Len() int {
	return l.LenFn()
}
