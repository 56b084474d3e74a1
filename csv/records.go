// Package csv implements the tabular record interfaces over CSV files:
// the cleaned-data output (file, content) and the RAG chunk output
// (file, chunk_id, chunk).
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/fwojciec/ragcrawl"
)

// Compile-time interface verification.
var (
	_ ragcrawl.CleanWriter = (*CleanWriter)(nil)
	_ ragcrawl.CleanReader = (*CleanReader)(nil)
	_ ragcrawl.ChunkWriter = (*ChunkWriter)(nil)
)

// CleanWriter appends extracted-content records to a CSV file with the
// header "file, content". Rows are buffered; Close flushes them.
type CleanWriter struct {
	f *os.File
	w *csv.Writer
}

// NewCleanWriter creates the output file, truncating any previous run, and
// writes the header row.
func NewCleanWriter(path string) (*CleanWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"file", "content"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}

	return &CleanWriter{f: f, w: w}, nil
}

// WriteClean appends one record.
func (cw *CleanWriter) WriteClean(rec *ragcrawl.CleanRecord) error {
	return cw.w.Write([]string{rec.File, rec.Content})
}

// Close flushes buffered rows and closes the file.
func (cw *CleanWriter) Close() error {
	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		cw.f.Close()
		return err
	}
	return cw.f.Close()
}

// CleanReader reads extracted-content records back from a cleaned CSV file.
type CleanReader struct {
	path string
}

// NewCleanReader creates a reader for the cleaned CSV at path.
func NewCleanReader(path string) *CleanReader {
	return &CleanReader{path: path}
}

// ReadClean reads all records, skipping the header row.
func (cr *CleanReader) ReadClean() ([]*ragcrawl.CleanRecord, error) {
	f, err := os.Open(cr.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cr.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", cr.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]*ragcrawl.CleanRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, &ragcrawl.CleanRecord{File: row[0], Content: row[1]})
	}
	return records, nil
}

// ChunkWriter appends chunk records to a CSV file with the header
// "file, chunk_id, chunk". Rows are buffered; Close flushes them.
type ChunkWriter struct {
	f *os.File
	w *csv.Writer
}

// NewChunkWriter creates the output file, truncating any previous run, and
// writes the header row.
func NewChunkWriter(path string) (*ChunkWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"file", "chunk_id", "chunk"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}

	return &ChunkWriter{f: f, w: w}, nil
}

// WriteChunk appends one record.
func (cw *ChunkWriter) WriteChunk(rec *ragcrawl.ChunkRecord) error {
	return cw.w.Write([]string{rec.File, strconv.Itoa(rec.ChunkID), rec.Chunk})
}

// Close flushes buffered rows and closes the file.
func (cw *ChunkWriter) Close() error {
	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		cw.f.Close()
		return err
	}
	return cw.f.Close()
}
