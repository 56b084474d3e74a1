// Package chunk implements the final pipeline stage: splitting cleaned page
// text into bounded-size, sentence-aligned chunks for retrieval.
package chunk

import (
	"context"
	"log/slog"

	"github.com/fwojciec/ragcrawl"
)

// DefaultChunkSize is the default chunk size bound in characters.
const DefaultChunkSize = 1000

// Chunker reads cleaned records and writes zero or more ordered chunk
// records per input record.
type Chunker struct {
	Logger *slog.Logger
}

// Result holds the outcome of a chunking pass.
type Result struct {
	Records int // cleaned records read
	Chunks  int // chunk records written
}

// Run splits every cleaned record into sentence-aligned chunks of at most
// chunkSize characters and writes them in source order. A chunkSize of zero
// or less falls back to DefaultChunkSize.
func (c *Chunker) Run(ctx context.Context, in ragcrawl.CleanReader, out ragcrawl.ChunkWriter, chunkSize int) (*Result, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	records, err := in.ReadClean()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Records++

		sentences := ragcrawl.SplitSentences(rec.Content)
		for i, text := range ragcrawl.BuildChunks(sentences, chunkSize) {
			chunk := &ragcrawl.ChunkRecord{File: rec.File, ChunkID: i, Chunk: text}
			if err := out.WriteChunk(chunk); err != nil {
				return result, err
			}
			result.Chunks++
		}
	}

	c.Logger.Info("chunking finished", "records", result.Records, "chunks", result.Chunks)

	return result, nil
}
