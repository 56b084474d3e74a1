package ragcrawl

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	newlineRE    = regexp.MustCompile(`\n+`)
	sentenceRE   = regexp.MustCompile(`[.!?]\s+`)
)

// NormalizeText collapses runs of whitespace to a single space and runs of
// newlines to a single newline, then trims leading and trailing space.
func NormalizeText(text string) string {
	text = whitespaceRE.ReplaceAllString(text, " ")
	text = newlineRE.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// SplitSentences splits text after each '.', '!' or '?' that is followed by
// whitespace. The terminator stays attached to its sentence; the boundary
// whitespace is consumed. Text without terminators is a single sentence.
func SplitSentences(text string) []string {
	if text == "" {
		return nil
	}
	var sentences []string
	start := 0
	for _, loc := range sentenceRE.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// BuildChunks greedily packs sentences into chunks of at most chunkSize
// bytes. A chunk closes when appending the next sentence would grow it past
// chunkSize; a single sentence longer than chunkSize forms its own oversized
// chunk. The final partial chunk is always emitted.
func BuildChunks(sentences []string, chunkSize int) []string {
	var chunks []string
	current := ""
	for _, sentence := range sentences {
		if len(current)+len(sentence) > chunkSize && current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
			current = sentence
		} else {
			current += " " + sentence
		}
	}
	if trimmed := strings.TrimSpace(current); trimmed != "" {
		chunks = append(chunks, trimmed)
	}
	return chunks
}
