// Package goquery implements link extraction using the goquery HTML library.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ragcrawl"
)

// Ensure LinkExtractor implements ragcrawl.LinkExtractor at compile time.
var _ ragcrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor finds in-scope links in a page. A link is in scope when its
// resolved absolute form, with any fragment stripped, starts with the
// configured base URL string.
type LinkExtractor struct {
	baseURL string
}

// NewLinkExtractor creates a LinkExtractor scoped to baseURL.
func NewLinkExtractor(baseURL string) *LinkExtractor {
	return &LinkExtractor{baseURL: baseURL}
}

// ExtractLinks parses html and returns every in-scope link, deduplicated, in
// document order. Hrefs are resolved against pageURL. Malformed hrefs and
// non-HTTP schemes (javascript:, mailto:, tel:) are skipped silently.
func (e *LinkExtractor) ExtractLinks(html, pageURL string) ([]string, error) {
	page, err := url.Parse(pageURL)
	if err != nil {
		return nil, ragcrawl.Errorf(ragcrawl.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ragcrawl.Errorf(ragcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		resolved := page.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		// Fragment variants are the same page; collapse them before the
		// scope test so they never reach the frontier.
		resolved.Fragment = ""

		link := resolved.String()
		if !strings.HasPrefix(link, e.baseURL) {
			return
		}
		if seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})

	return links, nil
}
