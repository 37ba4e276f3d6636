package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jekyll2astro/jekyll"
)

// BuildRedirects maps the legacy URLs of normalized posts to their new routes:
// every jekyll-redirect-from entry, and the explicit permalink when the new
// route differs from it.
func BuildRedirects(posts []jekyll.Post, collection string) map[string]string {
	redirects := make(map[string]string)

	for _, p := range posts {
		target := RoutePath(collection, p.Slug)

		from := p.Data.RedirectFrom()
		if permalink := p.Data.Permalink(); permalink != "" {
			from = append(from, permalink)
		}

		for _, old := range from {
			if !strings.HasPrefix(old, "/") {
				old = "/" + old
			}
			if old == target || old == strings.TrimSuffix(target, "/") {
				continue
			}
			redirects[old] = target
		}
	}

	return redirects
}

// WriteRedirects saves redirects as JSON, ready for the "redirects" option of
// astro.config.mjs.
func WriteRedirects(path string, redirects map[string]string) error {
	b, err := json.MarshalIndent(redirects, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding redirects: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	return os.WriteFile(path, append(b, '\n'), 0644)
}
