package csv_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/ragcrawl"
	ragcsv "github.com/fwojciec/ragcrawl/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cleaned_data.csv")

	w, err := ragcsv.NewCleanWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteClean(&ragcrawl.CleanRecord{File: "site/a.html", Content: "First page."}))
	require.NoError(t, w.WriteClean(&ragcrawl.CleanRecord{File: "site/b.html", Content: "Second page,\nwith a comma and newline."}))
	require.NoError(t, w.Close())

	records, err := ragcsv.NewCleanReader(path).ReadClean()
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, &ragcrawl.CleanRecord{File: "site/a.html", Content: "First page."}, records[0])
	assert.Equal(t, &ragcrawl.CleanRecord{File: "site/b.html", Content: "Second page,\nwith a comma and newline."}, records[1])
}

func TestCleanWriter_WritesHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cleaned_data.csv")

	w, err := ragcsv.NewCleanWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file,content\n", string(data))
}

func TestCleanReader_EmptyFileYieldsNoRecords(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cleaned_data.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	records, err := ragcsv.NewCleanReader(path).ReadClean()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCleanReader_MissingFileIsAnError(t *testing.T) {
	t.Parallel()

	_, err := ragcsv.NewCleanReader(filepath.Join(t.TempDir(), "nope.csv")).ReadClean()
	require.Error(t, err)
}

func TestChunkWriter_WritesOrderedRows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rag_chunks.csv")

	w, err := ragcsv.NewChunkWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteChunk(&ragcrawl.ChunkRecord{File: "site/a.html", ChunkID: 0, Chunk: "First chunk."}))
	require.NoError(t, w.WriteChunk(&ragcrawl.ChunkRecord{File: "site/a.html", ChunkID: 1, Chunk: "Second chunk."}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"file,chunk_id,chunk\n"+
			"site/a.html,0,First chunk.\n"+
			"site/a.html,1,Second chunk.\n",
		string(data))
}
