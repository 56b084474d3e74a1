// Package fs provides file-based storage for crawl artifacts.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/ragcrawl"
)

var reservedChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Ensure PageStore implements ragcrawl.PageStore at compile time.
var _ ragcrawl.PageStore = (*PageStore)(nil)

// PageStore writes raw page captures under a root directory.
type PageStore struct {
	root string
}

// NewPageStore creates a PageStore rooted at root.
func NewPageStore(root string) *PageStore {
	return &PageStore{root: root}
}

// URLToPath converts a page URL to a relative file path.
//
// The URL path is trimmed of surrounding slashes and every character in the
// set  < > : " / \ | ? *  is replaced with '_', so a page's whole path
// flattens to a single file name under its host directory. An empty path
// maps to "index". Query strings and fragments do not contribute.
//
// Example: https://example.com/docs/api/users → example.com/docs_api_users.html
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", ragcrawl.Errorf(ragcrawl.EINVALID, "URL %q has no host", rawURL)
	}

	name := reservedChars.ReplaceAllString(strings.Trim(u.Path, "/"), "_")
	if name == "" {
		name = "index"
	}

	return filepath.Join(u.Host, name+".html"), nil
}

// Save writes the page and returns its path relative to the store root.
// Saving the same URL twice overwrites silently.
func (s *PageStore) Save(ctx context.Context, page *ragcrawl.Page) (string, error) {
	relPath, err := URLToPath(page.URL)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.root, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, []byte(page.HTML), 0644); err != nil {
		return "", err
	}

	return relPath, nil
}
