package ragcrawl

import "time"

// VisitLedger is the durable record of fully processed URLs. It is the only
// crawl state that survives process restarts: a URL recorded in the ledger is
// never fetched or enqueued again, in this run or any later one.
type VisitLedger interface {
	// Contains reports whether url has already been processed.
	Contains(url string) bool

	// Record marks url as processed at visitedAt and flushes the ledger
	// to durable storage before returning. Safe for concurrent use.
	Record(url string, visitedAt time.Time) error

	// Len returns the number of recorded URLs.
	Len() int
}
