package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jekyll2astro/jekyll"
)

func TestBuildRedirects(t *testing.T) {
	posts := []jekyll.Post{
		{Slug: "2023/01/foo", Data: jekyll.Frontmatter{
			"redirect_from": []any{"/old/foo.html", "legacy/foo/"},
		}},
		{Slug: "about", Data: jekyll.Frontmatter{"permalink": "/blog/about/"}},
		{Slug: "bar", Data: jekyll.Frontmatter{"permalink": "/pages/bar.html"}},
		{Slug: "2023/02/plain", Data: jekyll.Frontmatter{}},
	}

	assert.Equal(t, map[string]string{
		"/old/foo.html":   "/blog/2023/01/foo/",
		"/legacy/foo/":    "/blog/2023/01/foo/",
		"/pages/bar.html": "/blog/bar/",
	}, BuildRedirects(posts, "blog"))
}

func TestWriteRedirects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "redirects.json")
	require.NoError(t, WriteRedirects(path, map[string]string{"/a": "/blog/a/"}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, map[string]string{"/a": "/blog/a/"}, got)
}
