package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"jekyll2astro/jekyll"
)

// Converted pairs a loaded entry with its normalized post.
type Converted struct {
	Entry Entry
	Post  jekyll.Post
}

// forEachLimit runs fn for every index in [0, n) with at most workers calls in flight.
func forEachLimit(n, workers int, fn func(i int)) {
	sem := make(chan struct{}, max(workers, 1))
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(i)
		}(i)
	}

	wg.Wait()
}

// NormalizeEntries normalizes every published entry, keeping the input order.
// Drafts and posts that can't be normalized are logged and left out.
func NormalizeEntries(entries []Entry, normalizer *jekyll.Normalizer, workers int) []Converted {
	results := make([]*Converted, len(entries))

	forEachLimit(len(entries), workers, func(i int) {
		e := entries[i]
		if !e.Post.Data.Published() {
			log.Debug("Skipping unpublished post", "source", e.Source)
			return
		}

		post, err := normalizer.Normalize(e.Post)
		if err != nil {
			log.Warnf("Could not normalize %s: %v", e.Source, err)
			return
		}
		if _, ok := post.Data.Date(); !ok {
			log.Warnf("No date found for %s", e.Source)
		}
		results[i] = &Converted{Entry: e, Post: post}
	})

	converted := make([]Converted, 0, len(results))
	for _, c := range results {
		if c != nil {
			converted = append(converted, *c)
		}
	}
	return converted
}

// BuildRoutes maps each post's original filename slug to its new route, for
// resolving post_url tags.
func BuildRoutes(converted []Converted) map[string]string {
	routes := make(map[string]string, len(converted))
	for _, c := range converted {
		routes[c.Entry.Post.Slug] = c.Post.Slug
	}
	return routes
}

// ProcessEntry converts the entry's body to Markdown, rewrites Liquid tags and
// writes the file with its Astro frontmatter. It returns the written path.
func ProcessEntry(c Converted, routes map[string]string, cfg Config) (string, error) {
	body := c.Entry.Body
	if c.Entry.Format == FormatHTML {
		markdown, err := ConvertHTMLToMarkdown(body, cfg.SiteURL)
		if err != nil {
			return "", fmt.Errorf("converting %s to markdown: %w", c.Entry.Source, err)
		}
		body = markdown
	}

	body, missing := PostProcessMarkdownLines(body, routes, cfg.Collection)
	for _, name := range missing {
		log.Warnf("Unresolved post_url %q in %s", name, c.Entry.Source)
	}

	frontmatter, err := GenerateFrontmatter(c.Post.Data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.Entry.Source, err)
	}

	filePath := OutputPath(cfg.OutputDir, c.Post.Slug)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", filePath, err)
	}
	if err := os.WriteFile(filePath, []byte(frontmatter+strings.TrimLeft(body, "\n")), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filePath, err)
	}

	return filePath, nil
}

// LoadEntries reads legacy posts from MySQL when configured, otherwise from
// the _posts directory.
func LoadEntries(cfg Config) ([]Entry, error) {
	var (
		entries []Entry
		errs    []error
		err     error
	)

	if cfg.UseDatabase() {
		db, connErr := ConnectDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		if connErr != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", connErr)
		}
		defer db.Close()
		entries, errs, err = LoadDatabaseEntries(db, cfg.Collection)
	} else {
		entries, errs, err = ReadPostsDir(cfg.PostsDir, cfg.Collection)
	}
	if err != nil {
		return nil, err
	}

	for _, e := range errs {
		log.Warnf("Skipping: %v", e)
	}
	return entries, nil
}

// Run converts every legacy post and writes the collection plus redirects.
// It returns the number of posts written.
func Run(cfg Config) (int, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	entries, err := LoadEntries(cfg)
	if err != nil {
		return 0, err
	}
	log.Info("Loaded posts", "count", len(entries))

	normalizer := jekyll.NewNormalizer(
		jekyll.WithPermalink(cfg.Permalink),
		jekyll.WithStripSegments(cfg.StripSegments),
	)
	converted := NormalizeEntries(entries, normalizer, cfg.WorkerCount())
	routes := BuildRoutes(converted)

	var mu sync.Mutex
	written := 0
	forEachLimit(len(converted), cfg.WorkerCount(), func(i int) {
		path, err := ProcessEntry(converted[i], routes, cfg)
		if err != nil {
			log.Warnf("%v", err)
			return
		}
		log.Debug("Wrote file", "path", path)

		mu.Lock()
		written++
		mu.Unlock()
	})

	if cfg.RedirectsFile != "" {
		posts := make([]jekyll.Post, len(converted))
		for i, c := range converted {
			posts[i] = c.Post
		}
		redirects := BuildRedirects(posts, cfg.Collection)
		if err := WriteRedirects(cfg.RedirectsFile, redirects); err != nil {
			return written, fmt.Errorf("failed to write redirects: %w", err)
		}
		log.Info("Wrote redirects", "path", cfg.RedirectsFile, "count", len(redirects))
	}

	return written, nil
}

func main() {
	cfg := LoadConfig()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q; using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	written, err := Run(cfg)
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}

	log.Info("Done", "written", written, "output", cfg.OutputDir)
}
