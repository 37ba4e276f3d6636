package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"jekyll2astro/jekyll"
)

const frontmatterDelimiter = "---"

// Body formats a legacy post can be written in.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Entry is a legacy post as loaded from a source, before normalization.
type Entry struct {
	Post   jekyll.Post
	Body   string
	Format string
	Source string // file path or database row, for log messages
}

var postExtensions = map[string]string{
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
}

// ReadPostsDir loads every post file directly inside dir, sorted by name.
// Files that fail to parse are returned in errs and skipped.
func ReadPostsDir(dir, collection string) (entries []Entry, errs []error, err error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading posts directory: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		format, ok := postExtensions[strings.ToLower(filepath.Ext(f.Name()))]
		if !ok {
			continue
		}

		path := filepath.Join(dir, f.Name())
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, readErr))
			continue
		}

		entry, parseErr := ParsePostFile(f.Name(), string(content))
		if parseErr != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, parseErr))
			continue
		}
		entry.Post.Collection = collection
		entry.Format = format
		entry.Source = path
		entries = append(entries, entry)
	}

	return entries, errs, nil
}

// ParsePostFile splits a post file into its YAML frontmatter and body. The slug
// is the file name without its extension, e.g. "2023-01-02-hello.md" gives
// "2023-01-02-hello".
func ParsePostFile(name, content string) (Entry, error) {
	entry := Entry{
		Post: jekyll.Post{
			Slug: strings.TrimSuffix(name, filepath.Ext(name)),
			Data: jekyll.Frontmatter{},
		},
		Format: FormatMarkdown,
		Source: name,
	}

	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, frontmatterDelimiter+"\n") {
		entry.Body = normalized
		return entry, nil
	}

	rest := normalized[len(frontmatterDelimiter)+1:]
	var raw, body string
	if strings.HasPrefix(rest, frontmatterDelimiter+"\n") || rest == frontmatterDelimiter {
		body = rest[len(frontmatterDelimiter):]
	} else {
		before, after, ok := strings.Cut(rest, "\n"+frontmatterDelimiter)
		if !ok {
			return entry, errors.New("unterminated frontmatter: missing closing ---")
		}
		raw, body = before, after
	}
	// whatever follows the closing delimiter on its line is dropped
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return entry, fmt.Errorf("parse frontmatter YAML: %w", err)
	}
	if len(doc.Content) > 0 {
		if err := doc.Content[0].Decode(&entry.Post.Data); err != nil {
			return entry, fmt.Errorf("parse frontmatter YAML: %w", err)
		}
		keepDateText(doc.Content[0], entry.Post.Data)
	}
	if entry.Post.Data == nil {
		entry.Post.Data = jekyll.Frontmatter{}
	}
	entry.Body = body

	return entry, nil
}

// keepDateText restores the date as written. yaml.v3 decodes values like
// "2023-01-02" into UTC time.Time, but Jekyll reads them in the local zone.
// ISO 8601 forms ("2023-01-02T10:00:00Z") keep their decoded value.
func keepDateText(mapping *yaml.Node, data jekyll.Frontmatter) {
	if mapping.Kind != yaml.MappingNode || data == nil {
		return
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		if key.Value == jekyll.KeyDate && value.Kind == yaml.ScalarNode && value.ShortTag() == "!!timestamp" &&
			!strings.ContainsAny(value.Value, "Tt") {
			data[jekyll.KeyDate] = value.Value
		}
	}
}
