package main

import (
	"regexp"
	"strings"
)

var (
	highlightStart = regexp.MustCompile(`^\s*{%-?\s*highlight\s+(\S+)[^%]*-?%}\s*$`)
	highlightEnd   = regexp.MustCompile(`^\s*{%-?\s*endhighlight\s*-?%}\s*$`)
	postURLTag     = regexp.MustCompile(`{%-?\s*post_url\s+(\S+?)\s*-?%}`)
	siteURLTag     = regexp.MustCompile(`{{-?\s*site\.(?:baseurl|url)\s*-?}}`)
	rawTag         = regexp.MustCompile(`{%-?\s*(?:end)?raw\s*-?%}`)
)

// PostProcessMarkdownLines rewrites the Liquid tags Astro can't render.
// routes maps an original post filename slug ("2010-07-21-name") to its
// normalized route; post_url tags pointing elsewhere are returned in missing
// and left untouched.
func PostProcessMarkdownLines(markdown string, routes map[string]string, collection string) (string, []string) {
	var missing []string

	lines := strings.Split(markdown, "\n")
	for i, line := range lines {
		if m := highlightStart.FindStringSubmatch(line); m != nil {
			lines[i] = "```" + m[1]
			continue
		}
		if highlightEnd.MatchString(line) {
			lines[i] = "```"
			continue
		}

		line = postURLTag.ReplaceAllStringFunc(line, func(tag string) string {
			name := postURLTag.FindStringSubmatch(tag)[1]
			// post_url may include a subdirectory, e.g. "2010/2010-07-21-name"
			name = name[strings.LastIndex(name, "/")+1:]
			route, ok := routes[name]
			if !ok {
				missing = append(missing, name)
				return tag
			}
			return RoutePath(collection, route)
		})
		line = siteURLTag.ReplaceAllString(line, "")
		line = rawTag.ReplaceAllString(line, "")

		lines[i] = line
	}

	return strings.Join(lines, "\n"), missing
}

// RoutePath is the URL Astro serves a collection entry at.
func RoutePath(collection, route string) string {
	if route == "" {
		return "/" + collection + "/"
	}
	return "/" + collection + "/" + route + "/"
}
