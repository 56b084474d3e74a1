package mock

import "github.com/fwojciec/ragcrawl"

// Compile-time interface verification.
var (
	_ ragcrawl.CleanWriter = (*CleanWriter)(nil)
	_ ragcrawl.CleanReader = (*CleanReader)(nil)
	_ ragcrawl.ChunkWriter = (*ChunkWriter)(nil)
)

// CleanWriter is a mock implementation of ragcrawl.CleanWriter.
type CleanWriter struct {
	WriteCleanFn func(rec *ragcrawl.CleanRecord) error
	CloseFn      func() error
}

func (w *CleanWriter) WriteClean(rec *ragcrawl.CleanRecord) error {
	return w.WriteCleanFn(rec)
}

func (w *CleanWriter) Close() error {
	return w.CloseFn()
}

// CleanReader is a mock implementation of ragcrawl.CleanReader.
type CleanReader struct {
	ReadCleanFn func() ([]*ragcrawl.CleanRecord, error)
}

func (r *CleanReader) ReadClean() ([]*ragcrawl.CleanRecord, error) {
	return r.ReadCleanFn()
}

// ChunkWriter is a mock implementation of ragcrawl.ChunkWriter.
type ChunkWriter struct {
	WriteChunkFn func(rec *ragcrawl.ChunkRecord) error
	CloseFn      func() error
}

func (w *ChunkWriter) WriteChunk(rec *ragcrawl.ChunkRecord) error {
	return w.WriteChunkFn(rec)
}

func (w *ChunkWriter) Close() error {
	return w.CloseFn()
}
