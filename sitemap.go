package ragcrawl

import "context"

// SitemapService discovers URLs from website sitemaps.
// Used to seed the crawl frontier before recursive discovery begins.
type SitemapService interface {
	// DiscoverURLs finds all URLs from a site's sitemap that fall inside
	// baseURL. It first checks robots.txt for sitemap directives, then
	// falls back to /sitemap.xml. Sitemap indexes are resolved
	// recursively. A site without a sitemap yields an empty slice, not
	// an error.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
