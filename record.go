package ragcrawl

// CleanRecord is one row of the extracted-content output: the stored page
// file it came from plus its whitespace-normalized main-content text.
type CleanRecord struct {
	File    string
	Content string
}

// ChunkRecord is one row of the chunked output. ChunkID is zero-based and
// ordered by position in the source text.
type ChunkRecord struct {
	File    string
	ChunkID int
	Chunk   string
}

// CleanWriter appends extracted-content records to tabular storage.
// Rows may be buffered; Close flushes and reports any write error.
type CleanWriter interface {
	WriteClean(rec *CleanRecord) error
	Close() error
}

// CleanReader reads extracted-content records back for chunking.
type CleanReader interface {
	ReadClean() ([]*CleanRecord, error)
}

// ChunkWriter appends chunk records to tabular storage.
// Rows may be buffered; Close flushes and reports any write error.
type ChunkWriter interface {
	WriteChunk(rec *ChunkRecord) error
	Close() error
}
