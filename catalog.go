package ragcrawl

import (
	"context"
	"time"
)

// Visit status values.
const (
	VisitFetched = "fetched"
	VisitFailed  = "failed"
)

// Run represents one crawl invocation against a base URL.
type Run struct {
	ID        string    `json:"id"`
	BaseURL   string    `json:"baseUrl"`
	StartedAt time.Time `json:"startedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.BaseURL == "" {
		return Errorf(EINVALID, "run base URL required")
	}
	return nil
}

// Visit represents the terminal outcome of fetching one URL during a run.
type Visit struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	URL         string    `json:"url"`
	Status      string    `json:"status"`
	Fallback    bool      `json:"fallback"`    // served by the browser fallback
	ContentHash string    `json:"contentHash"` // hex xxhash of the raw HTML
	Bytes       int       `json:"bytes"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the visit contains invalid fields.
func (v *Visit) Validate() error {
	if v.RunID == "" {
		return Errorf(EINVALID, "visit run ID required")
	}
	if v.URL == "" {
		return Errorf(EINVALID, "visit URL required")
	}
	if v.Status != VisitFetched && v.Status != VisitFailed {
		return Errorf(EINVALID, "visit status must be %q or %q", VisitFetched, VisitFailed)
	}
	return nil
}

// CatalogService records crawl history for operational inspection.
// The catalog is advisory: it never gates crawl decisions (the VisitLedger
// owns those) and recording failures are logged by callers, not fatal.
type CatalogService interface {
	// CreateRun creates a new run.
	CreateRun(ctx context.Context, run *Run) error

	// CreateVisit records the outcome of one URL fetch.
	CreateVisit(ctx context.Context, visit *Visit) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindVisits retrieves visits matching the filter, newest first.
	FindVisits(ctx context.Context, filter VisitFilter) ([]*Visit, error)
}

// VisitFilter represents a filter for FindVisits.
type VisitFilter struct {
	RunID  *string `json:"runId"`
	URL    *string `json:"url"`
	Status *string `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
