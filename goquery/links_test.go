package goquery_test

import (
	"testing"

	"github.com/fwojciec/ragcrawl"
	"github.com/fwojciec/ragcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure LinkExtractor implements ragcrawl.LinkExtractor at compile time.
var _ ragcrawl.LinkExtractor = (*goquery.LinkExtractor)(nil)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("keeps only links under the base URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/a">A</a>
			<a href="/a/b">B</a>
			<a href="https://other.example/x">External</a>
			<a href="/a#frag">A again</a>
		</body></html>`

		extractor := goquery.NewLinkExtractor("https://site/")
		links, err := extractor.ExtractLinks(html, "https://site/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://site/a", "https://site/a/b"}, links)
	})

	t.Run("resolves relative hrefs against the page URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="install">Install</a>
			<a href="../api/">API</a>
			<a href="/docs/faq">FAQ</a>
		</body></html>`

		extractor := goquery.NewLinkExtractor("https://example.com/docs/")
		links, err := extractor.ExtractLinks(html, "https://example.com/docs/guide/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/docs/guide/install",
			"https://example.com/docs/api/",
			"https://example.com/docs/faq",
		}, links)
	})

	t.Run("strips fragments before the scope test", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/docs/page#install">Install</a>
			<a href="/docs/page#usage">Usage</a>
			<a href="#top">Top</a>
		</body></html>`

		extractor := goquery.NewLinkExtractor("https://example.com/docs")
		links, err := extractor.ExtractLinks(html, "https://example.com/docs/page")

		require.NoError(t, err)
		// All three collapse to the same page.
		assert.Equal(t, []string{"https://example.com/docs/page"}, links)
	})

	t.Run("skips non-HTTP schemes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="javascript:void(0)">JS</a>
			<a href="mailto:docs@example.com">Mail</a>
			<a href="tel:+1234567890">Call</a>
			<a href="https://example.com/page">Page</a>
		</body></html>`

		extractor := goquery.NewLinkExtractor("https://example.com/")
		links, err := extractor.ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/page"}, links)
	})

	t.Run("skips malformed hrefs silently", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="://bad">Bad</a>
			<a href="https://example.com/good">Good</a>
		</body></html>`

		extractor := goquery.NewLinkExtractor("https://example.com/")
		links, err := extractor.ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/good"}, links)
	})

	t.Run("deduplicates in first-seen order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<nav><a href="/b">B</a><a href="/a">A</a></nav>
			<main><a href="/a">A again</a><a href="/c">C</a></main>
		</body></html>`

		extractor := goquery.NewLinkExtractor("https://example.com/")
		links, err := extractor.ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/b",
			"https://example.com/a",
			"https://example.com/c",
		}, links)
	})

	t.Run("page with no links yields empty set", func(t *testing.T) {
		t.Parallel()

		extractor := goquery.NewLinkExtractor("https://example.com/")
		links, err := extractor.ExtractLinks("<html><body><p>text</p></body></html>", "https://example.com/")

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("invalid page URL is an error", func(t *testing.T) {
		t.Parallel()

		extractor := goquery.NewLinkExtractor("https://example.com/")
		_, err := extractor.ExtractLinks("<html></html>", "://not-a-url")

		require.Error(t, err)
		assert.Equal(t, ragcrawl.EINVALID, ragcrawl.ErrorCode(err))
	})
}
