package jekyll

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// datePrefixLen is the length of the "YYYY-MM-DD-" stamp on post filenames.
const datePrefixLen = len("2006-01-02-")

// ErrUnresolvedDate is returned when a post has no usable date but its
// permalink template needs one.
var ErrUnresolvedDate = errors.New("post has no date but the permalink template requires one")

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithPermalink sets the template used for posts without an explicit permalink.
// An empty template keeps the default.
func WithPermalink(template string) Option {
	return func(n *Normalizer) {
		if template != "" {
			n.permalink = template
		}
	}
}

// WithStripSegments sets how many leading path segments (the collection
// namespace, "blog" in the default template) are removed from the route.
func WithStripSegments(count int) Option {
	return func(n *Normalizer) {
		if count >= 0 {
			n.strip = count
		}
	}
}

// WithLocation sets the offset used for dates that don't carry one.
func WithLocation(loc *time.Location) Option {
	return func(n *Normalizer) {
		if loc != nil {
			n.loc = loc
		}
	}
}

// Normalizer rewrites Jekyll posts for Astro. It holds no mutable state and is
// safe for concurrent use.
type Normalizer struct {
	permalink string
	strip     int
	loc       *time.Location
}

func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		permalink: DefaultPermalink,
		strip:     1,
		loc:       time.Local,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// FormatPost returns a pipeline stage normalizing one post at a time.
func FormatPost(opts ...Option) func(Post) (Post, error) {
	return NewNormalizer(opts...).Normalize
}

// dateSource yields a candidate date for a post; sources are tried in order.
type dateSource func(post Post, filename time.Time, hasFilename bool) (time.Time, bool)

// Frontmatter beats the filename.
func (n *Normalizer) dateSources() []dateSource {
	return []dateSource{
		n.frontmatterDate,
		func(_ Post, filename time.Time, ok bool) (time.Time, bool) { return filename, ok },
	}
}

func (n *Normalizer) frontmatterDate(post Post, _ time.Time, _ bool) (time.Time, bool) {
	switch v := post.Data[KeyDate].(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case string:
		return ParseDateTimeIn(v, n.loc)
	default:
		return time.Time{}, false
	}
}

// Normalize resolves the post's date, works out its route and returns a new
// post with Slug set to that route and "date"/"pubDate" set to the resolved
// date. The input is not modified. When no date can be found both keys are
// removed, and ErrUnresolvedDate is returned only if the route depends on it.
func (n *Normalizer) Normalize(post Post) (Post, error) {
	out := post.Clone()
	working := post.Slug

	// is there a date in the filename?
	filenameDate, hasFilenameDate := ParseDateTimeIn(working, n.loc)
	if hasFilenameDate {
		if len(working) > datePrefixLen {
			working = working[datePrefixLen:]
		} else {
			working = ""
		}
	}
	if working == "" {
		working = slug.Make(out.Data.Title())
	}

	var date time.Time
	resolved := false
	for _, source := range n.dateSources() {
		if date, resolved = source(post, filenameDate, hasFilenameDate); resolved {
			break
		}
	}

	if resolved {
		out.Data[KeyDate] = date
		out.Data[KeyPubDate] = date
	} else {
		delete(out.Data, KeyDate)
		delete(out.Data, KeyPubDate)
	}

	url := out.Data.Permalink()
	if url == "" {
		if !resolved && usesDate(n.permalink) {
			return post, fmt.Errorf("%q: %w", post.Slug, ErrUnresolvedDate)
		}
		url = FormatPermalink(n.permalink, date.In(n.loc), working)
	}

	out.Slug = n.route(url)
	return out, nil
}

// route drops the leading namespace segments and any trailing empty segments, e.g.
// "/blog/2009/05/http-cookies-explained/" becomes "2009/05/http-cookies-explained".
func (n *Normalizer) route(url string) string {
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}

	parts := strings.Split(url, "/")[1:]
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	if n.strip >= len(parts) {
		return ""
	}
	return strings.Join(parts[n.strip:], "/")
}
