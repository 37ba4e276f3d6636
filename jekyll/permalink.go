package jekyll

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultPermalink is the template applied when a post has no permalink of its own.
const DefaultPermalink = "/blog/:year/:month/:title/"

type token struct {
	name   string
	dated  bool
	expand func(date time.Time, slug string) string
}

// Longest first: a token must win over any shorter token that is its prefix.
var tokens = sortTokens([]token{
	{":year", true, func(d time.Time, _ string) string { return fmt.Sprintf("%04d", d.Year()) }},
	{":short_year", true, func(d time.Time, _ string) string { return fmt.Sprintf("%02d", d.Year()%100) }},
	{":month", true, func(d time.Time, _ string) string { return fmt.Sprintf("%02d", int(d.Month())) }},
	{":i_month", true, func(d time.Time, _ string) string { return strconv.Itoa(int(d.Month())) }},
	{":day", true, func(d time.Time, _ string) string { return fmt.Sprintf("%02d", d.Day()) }},
	{":i_day", true, func(d time.Time, _ string) string { return strconv.Itoa(d.Day()) }},
	{":hour", true, func(d time.Time, _ string) string { return fmt.Sprintf("%02d", d.Hour()) }},
	{":minute", true, func(d time.Time, _ string) string { return fmt.Sprintf("%02d", d.Minute()) }},
	{":second", true, func(d time.Time, _ string) string { return fmt.Sprintf("%02d", d.Second()) }},
	{":title", false, func(_ time.Time, s string) string { return s }},
	{":slug", false, func(_ time.Time, s string) string { return s }},
})

func sortTokens(ts []token) []token {
	sort.SliceStable(ts, func(i, j int) bool { return len(ts[i].name) > len(ts[j].name) })
	return ts
}

// FormatPermalink fills the placeholders of a Jekyll permalink template with
// values derived from date and slug. Date fields are read in date's own
// location. Unknown placeholders are copied through untouched.
func FormatPermalink(template string, date time.Time, slug string) string {
	var b strings.Builder
	b.Grow(len(template) + len(slug))

	for i := 0; i < len(template); {
		if template[i] == ':' {
			if t, ok := matchToken(template[i:]); ok {
				b.WriteString(t.expand(date, slug))
				i += len(t.name)
				continue
			}
		}
		b.WriteByte(template[i])
		i++
	}

	return b.String()
}

// usesDate reports whether template contains any date placeholder.
func usesDate(template string) bool {
	for i := 0; i < len(template); i++ {
		if template[i] != ':' {
			continue
		}
		if t, ok := matchToken(template[i:]); ok && t.dated {
			return true
		}
	}
	return false
}

func matchToken(s string) (token, bool) {
	for _, t := range tokens {
		if strings.HasPrefix(s, t.name) {
			return t, true
		}
	}
	return token{}, false
}
