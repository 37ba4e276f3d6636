// Package jekyll converts posts written for Jekyll (date-stamped filenames,
// permalink templates, loosely formatted dates) into the shape an Astro
// content collection expects.
package jekyll

import (
	"maps"
	"time"

	"github.com/spf13/cast"
)

// Frontmatter keys the normalizer reads or writes.
const (
	KeyTitle        = "title"
	KeyDate         = "date"
	KeyPubDate      = "pubDate"
	KeyPermalink    = "permalink"
	KeyTags         = "tags"
	KeyCategories   = "categories"
	KeyCategory     = "category"
	KeyPublished    = "published"
	KeyRedirectFrom = "redirect_from"
)

// Post is a collection entry: the slug taken from the source file name plus
// the decoded frontmatter.
type Post struct {
	Slug       string
	Collection string
	Data       Frontmatter
}

// Frontmatter holds a post's metadata. Keys the normalizer doesn't know about
// are carried through unchanged.
type Frontmatter map[string]any

// Clone returns a copy of p whose Data can be modified without touching p.
func (p Post) Clone() Post {
	p.Data = maps.Clone(p.Data)
	if p.Data == nil {
		p.Data = Frontmatter{}
	}
	return p
}

func (f Frontmatter) Title() string {
	return cast.ToString(f[KeyTitle])
}

func (f Frontmatter) Permalink() string {
	return cast.ToString(f[KeyPermalink])
}

// Date returns the resolved date, if the post has one.
func (f Frontmatter) Date() (time.Time, bool) {
	t, ok := f[KeyDate].(time.Time)
	return t, ok
}

// Tags accepts both a YAML list and Jekyll's space separated string form.
func (f Frontmatter) Tags() []string {
	return stringList(f[KeyTags])
}

// Categories merges the "categories" list with the singular "category" key.
func (f Frontmatter) Categories() []string {
	cats := stringList(f[KeyCategories])
	if c := cast.ToString(f[KeyCategory]); c != "" {
		cats = append(cats, c)
	}
	return cats
}

// RedirectFrom returns the legacy URLs listed by jekyll-redirect-from.
func (f Frontmatter) RedirectFrom() []string {
	switch v := f[KeyRedirectFrom].(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return cast.ToStringSlice(v)
	}
}

// Published is false only when the frontmatter explicitly says so.
func (f Frontmatter) Published() bool {
	v, ok := f[KeyPublished]
	if !ok || v == nil {
		return true
	}
	return cast.ToBool(v)
}

func stringList(v any) []string {
	if v == nil {
		return nil
	}
	// cast splits strings on whitespace, matching Jekyll's "tags: a b c"
	return cast.ToStringSlice(v)
}
