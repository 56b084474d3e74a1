package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/ragcrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ ragcrawl.CatalogService = (*CatalogService)(nil)

// CatalogService implements ragcrawl.CatalogService using SQLite.
type CatalogService struct {
	db *DB
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *DB) *CatalogService {
	return &CatalogService{db: db}
}

// CreateRun creates a new run. The ID is generated when not provided and the
// start time defaults to now.
func (s *CatalogService) CreateRun(ctx context.Context, run *ragcrawl.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, base_url, started_at)
		VALUES (?, ?, ?)
	`, run.ID, run.BaseURL, run.StartedAt.Format(time.RFC3339))

	return err
}

// CreateVisit records the outcome of one URL fetch.
func (s *CatalogService) CreateVisit(ctx context.Context, visit *ragcrawl.Visit) error {
	if err := visit.Validate(); err != nil {
		return err
	}

	visit.ID = uuid.New().String()
	if visit.FetchedAt.IsZero() {
		visit.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visits (id, run_id, url, status, fallback, content_hash, bytes, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, visit.ID, visit.RunID, visit.URL, visit.Status, visit.Fallback,
		visit.ContentHash, visit.Bytes, visit.FetchedAt.Format(time.RFC3339))

	return err
}

// FindRunByID retrieves a run by ID.
// Returns ENOTFOUND if the run does not exist.
func (s *CatalogService) FindRunByID(ctx context.Context, id string) (*ragcrawl.Run, error) {
	var run ragcrawl.Run
	var startedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, base_url, started_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.BaseURL, &startedAt)

	if err == sql.ErrNoRows {
		return nil, ragcrawl.Errorf(ragcrawl.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.StartedAt, err = parseRFC3339(startedAt, "started_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// FindVisits retrieves visits matching the filter, newest first.
func (s *CatalogService) FindVisits(ctx context.Context, filter ragcrawl.VisitFilter) ([]*ragcrawl.Visit, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, run_id, url, status, fallback, content_hash, bytes, fetched_at
		FROM visits
		WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY fetched_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []*ragcrawl.Visit
	for rows.Next() {
		var visit ragcrawl.Visit
		var fetchedAt string

		if err := rows.Scan(&visit.ID, &visit.RunID, &visit.URL, &visit.Status,
			&visit.Fallback, &visit.ContentHash, &visit.Bytes, &fetchedAt); err != nil {
			return nil, err
		}

		visit.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		visits = append(visits, &visit)
	}

	return visits, rows.Err()
}

// parseRFC3339 parses a stored timestamp column, naming the column in the
// error. Timestamps are written by this service, so a parse failure means
// the database was edited by hand.
func parseRFC3339(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// appendPagination adds LIMIT and OFFSET clauses for positive values.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
