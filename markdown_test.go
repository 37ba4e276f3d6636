package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"jekyll2astro/jekyll"
)

func TestConvertHTMLToMarkdown(t *testing.T) {
	t.Run("Should convert basic markup", func(t *testing.T) {
		md, err := ConvertHTMLToMarkdown("<h2>Title</h2><p>Some <strong>bold</strong> text.</p>", "")
		require.NoError(t, err)
		assert.Contains(t, md, "## Title")
		assert.Contains(t, md, "Some **bold** text.")
	})

	t.Run("Should make links to the old site relative", func(t *testing.T) {
		md, err := ConvertHTMLToMarkdown(`<p><a href="https://example.com/2020/01/post.html">old</a> <a href="https://other.org/x">ext</a></p>`, "https://example.com")
		require.NoError(t, err)
		assert.Contains(t, md, "[old](/2020/01/post.html)")
		assert.Contains(t, md, "(https://other.org/x)")
	})

	t.Run("Should turn figures into captioned images", func(t *testing.T) {
		md, err := ConvertHTMLToMarkdown(`<figure><img src="/img/a.png" alt="A"><figcaption>The "A" image</figcaption></figure>`, "")
		require.NoError(t, err)
		assert.Contains(t, md, `![A](/img/a.png "The 'A' image")`)
	})

	t.Run("Should link embedded content", func(t *testing.T) {
		md, err := ConvertHTMLToMarkdown(`<iframe src="https://player.example/v/1"></iframe>`, "")
		require.NoError(t, err)
		assert.Contains(t, md, "[View embedded content](https://player.example/v/1)")
	})
}

func TestGenerateFrontmatter(t *testing.T) {
	date := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)
	fm, err := GenerateFrontmatter(jekyll.Frontmatter{
		"title":   "A sample post",
		"date":    date,
		"pubDate": date,
		"tags":    []any{"go"},
	})
	require.NoError(t, err)

	assert.Contains(t, fm, "date: 2023-01-02T00:00:00Z\n")
	assert.Contains(t, fm, "pubDate: 2023-01-02T00:00:00Z\n")
	require.True(t, len(fm) > 8)
	assert.Equal(t, "---\n", fm[:4])
	assert.Equal(t, "---\n\n", fm[len(fm)-5:])

	var back map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(fm[4:len(fm)-5]), &back))
	assert.Equal(t, "A sample post", back["title"])
	assert.Equal(t, []any{"go"}, back["tags"])
}
