package ragcrawl_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/ragcrawl"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	t.Run("collapses whitespace runs to single spaces", func(t *testing.T) {
		t.Parallel()

		got := ragcrawl.NormalizeText("Getting  started\twith\n\nthe   cluster.")

		assert.Equal(t, "Getting started with the cluster.", got)
	})

	t.Run("trims leading and trailing space", func(t *testing.T) {
		t.Parallel()

		got := ragcrawl.NormalizeText("   padded content \n")

		assert.Equal(t, "padded content", got)
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, ragcrawl.NormalizeText("  \n\t "))
	})
}

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	t.Run("splits after terminator plus whitespace", func(t *testing.T) {
		t.Parallel()

		got := ragcrawl.SplitSentences("First sentence. Second one! Third? Fourth")

		assert.Equal(t, []string{"First sentence.", "Second one!", "Third?", "Fourth"}, got)
	})

	t.Run("keeps terminator without trailing whitespace attached", func(t *testing.T) {
		t.Parallel()

		got := ragcrawl.SplitSentences("Run jobs with sbatch.")

		assert.Equal(t, []string{"Run jobs with sbatch."}, got)
	})

	t.Run("consumes the whole whitespace run at a boundary", func(t *testing.T) {
		t.Parallel()

		got := ragcrawl.SplitSentences("One.   Two.")

		assert.Equal(t, []string{"One.", "Two."}, got)
	})

	t.Run("splits only at the last of stacked terminators", func(t *testing.T) {
		t.Parallel()

		got := ragcrawl.SplitSentences("Really?! Yes.")

		assert.Equal(t, []string{"Really?!", "Yes."}, got)
	})

	t.Run("empty input yields no sentences", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, ragcrawl.SplitSentences(""))
	})
}

func TestBuildChunks(t *testing.T) {
	t.Parallel()

	t.Run("packs sentences greedily up to the size limit", func(t *testing.T) {
		t.Parallel()

		sentences := []string{"aaaa.", "bbbb.", "cccc."}

		got := ragcrawl.BuildChunks(sentences, 12)

		assert.Equal(t, []string{"aaaa. bbbb.", "cccc."}, got)
	})

	t.Run("always emits the final partial chunk", func(t *testing.T) {
		t.Parallel()

		got := ragcrawl.BuildChunks([]string{"short."}, 1000)

		assert.Equal(t, []string{"short."}, got)
	})

	t.Run("oversized sentence forms its own chunk", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("x", 50) + "."
		got := ragcrawl.BuildChunks([]string{"lead.", long, "tail."}, 20)

		assert.Equal(t, []string{"lead.", long, "tail."}, got)
	})

	t.Run("no sentences yields no chunks", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, ragcrawl.BuildChunks(nil, 100))
	})

	t.Run("concatenated chunks reconstruct the source text", func(t *testing.T) {
		t.Parallel()

		text := "Alpha beta gamma. Delta epsilon! Zeta eta theta? Iota kappa."
		chunks := ragcrawl.BuildChunks(ragcrawl.SplitSentences(text), 25)

		assert.Equal(t, text, strings.Join(chunks, " "))
		for i, chunk := range chunks[:len(chunks)-1] {
			assert.LessOrEqual(t, len(chunk), 25, "chunk %d over size", i)
		}
	})
}
