package fs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fwojciec/ragcrawl"
)

// Ensure Ledger implements ragcrawl.VisitLedger at compile time.
var _ ragcrawl.VisitLedger = (*Ledger)(nil)

// Ledger is a visit ledger backed by a single JSON object file mapping URL
// to RFC 3339 timestamp. The whole file is rewritten on every Record call
// via a temp file and rename, so a crash never leaves a partial write.
type Ledger struct {
	path string

	mu      sync.Mutex
	visited map[string]string // URL → RFC 3339 timestamp
}

// OpenLedger loads the ledger at path. A missing file starts an empty
// ledger; an unreadable or malformed file does too, with a warning, so a
// damaged ledger costs re-crawling, never a failed run.
func OpenLedger(path string, logger *slog.Logger) *Ledger {
	l := &Ledger{
		path:    path,
		visited: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("ledger unreadable, starting empty", "path", path, "err", err)
		}
		return l
	}
	if err := json.Unmarshal(data, &l.visited); err != nil {
		logger.Warn("ledger malformed, starting empty", "path", path, "err", err)
		l.visited = make(map[string]string)
	}
	return l
}

// Contains reports whether url has been recorded.
func (l *Ledger) Contains(url string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.visited[url]
	return ok
}

// Len returns the number of recorded URLs.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visited)
}

// Record marks url as visited and rewrites the backing file before
// returning. Safe for concurrent use; writes are serialized.
func (l *Ledger) Record(url string, visitedAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.visited[url] = visitedAt.UTC().Format(time.RFC3339)
	return l.flush()
}

// flush rewrites the backing file. Callers must hold mu.
func (l *Ledger) flush() error {
	data, err := json.MarshalIndent(l.visited, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating ledger temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing ledger temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}
