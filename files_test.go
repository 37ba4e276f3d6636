package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jekyll2astro/jekyll"
)

func TestParsePostFile(t *testing.T) {
	t.Run("Should split frontmatter and body", func(t *testing.T) {
		content := "---\r\ntitle: A sample post\r\ndate: 2023-01-02 10:00:00 +0100\r\ntags: [go, astro]\r\n---\r\nHello\r\n"
		entry, err := ParsePostFile("2023-01-02-foo-bar-baz.md", content)
		require.NoError(t, err)

		assert.Equal(t, "2023-01-02-foo-bar-baz", entry.Post.Slug)
		assert.Equal(t, "A sample post", entry.Post.Data.Title())
		assert.Equal(t, "2023-01-02 10:00:00 +0100", entry.Post.Data["date"])
		assert.Equal(t, []string{"go", "astro"}, entry.Post.Data.Tags())
		assert.Equal(t, "Hello\n", entry.Body)
	})

	t.Run("Should keep unquoted dates as written", func(t *testing.T) {
		for _, date := range []string{"2023-01-02", "2023-01-02 10:00:00", "2023-01-02 10:00"} {
			entry, err := ParsePostFile("foo.md", "---\ndate: "+date+"\n---\n")
			require.NoError(t, err)
			assert.Equal(t, date, entry.Post.Data["date"], date)
		}
	})

	t.Run("Should read unquoted dates in the local zone", func(t *testing.T) {
		gmt8 := time.FixedZone("GMT-8", -8*3600)
		normalizer := jekyll.NewNormalizer(jekyll.WithLocation(gmt8))

		cases := map[string]time.Time{
			"2023-01-02":          time.Date(2023, time.January, 2, 0, 0, 0, 0, gmt8),
			"2023-01-02 10:00:00": time.Date(2023, time.January, 2, 10, 0, 0, 0, gmt8),
			"2023-01-02 10:00":    time.Date(2023, time.January, 2, 10, 0, 0, 0, gmt8),
		}
		for date, want := range cases {
			entry, err := ParsePostFile("foo.md", "---\ntitle: Foo\ndate: "+date+"\n---\n")
			require.NoError(t, err)
			post, err := normalizer.Normalize(entry.Post)
			require.NoError(t, err)
			assert.Equal(t, want, post.Data["date"], date)
		}
	})

	t.Run("Should leave other timestamps decoded", func(t *testing.T) {
		entry, err := ParsePostFile("foo.md", "---\nupdated: 2023-01-02\ndate: 2023-01-02T10:00:00Z\n---\n")
		require.NoError(t, err)
		assert.IsType(t, time.Time{}, entry.Post.Data["updated"])
		assert.Equal(t, time.Date(2023, time.January, 2, 10, 0, 0, 0, time.UTC), entry.Post.Data["date"])
	})

	t.Run("Should accept files without frontmatter", func(t *testing.T) {
		entry, err := ParsePostFile("about.html", "<p>hi</p>")
		require.NoError(t, err)
		assert.Equal(t, "about", entry.Post.Slug)
		assert.Equal(t, jekyll.Frontmatter{}, entry.Post.Data)
		assert.Equal(t, "<p>hi</p>", entry.Body)
	})

	t.Run("Should accept empty frontmatter", func(t *testing.T) {
		entry, err := ParsePostFile("x.md", "---\n---\nbody")
		require.NoError(t, err)
		assert.Equal(t, jekyll.Frontmatter{}, entry.Post.Data)
		assert.Equal(t, "body", entry.Body)
	})

	t.Run("Should reject unterminated frontmatter", func(t *testing.T) {
		_, err := ParsePostFile("x.md", "---\ntitle: x\nbody")
		assert.Error(t, err)
	})

	t.Run("Should reject invalid YAML", func(t *testing.T) {
		_, err := ParsePostFile("x.md", "---\ntitle: [unclosed\n---\n")
		assert.Error(t, err)
	})
}

func TestReadPostsDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	write("2023-01-02-b.md", "---\ntitle: B\n---\nb")
	write("2022-05-06-a.html", "---\ntitle: A\n---\n<p>a</p>")
	write("notes.txt", "ignored")
	write("2023-03-03-broken.markdown", "---\ntitle: x\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts"), 0755))

	entries, errs, err := ReadPostsDir(dir, "blog")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Len(t, errs, 1)

	assert.Equal(t, "2022-05-06-a", entries[0].Post.Slug)
	assert.Equal(t, FormatHTML, entries[0].Format)
	assert.Equal(t, "blog", entries[0].Post.Collection)
	assert.Equal(t, filepath.Join(dir, "2022-05-06-a.html"), entries[0].Source)

	assert.Equal(t, "2023-01-02-b", entries[1].Post.Slug)
	assert.Equal(t, FormatMarkdown, entries[1].Format)

	_, _, err = ReadPostsDir(filepath.Join(dir, "missing"), "blog")
	assert.Error(t, err)
}
