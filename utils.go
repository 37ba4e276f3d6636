package main

import (
	"path/filepath"
	"strings"
)

// reservedPathChars are rejected in file names by at least one of the
// platforms Astro builds on.
const reservedPathChars = `\:*?"<>|`

// segmentFilename makes one route segment safe to use as a file or directory name.
func segmentFilename(seg string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(reservedPathChars, r) {
			return '_'
		}
		return r
	}, seg)
}

// OutputPath is the file a normalized route is written to. Each route segment
// becomes a directory so Astro derives the same slug from the file's path.
func OutputPath(outputDir, route string) string {
	var parts []string
	for _, seg := range strings.Split(route, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		parts = append(parts, segmentFilename(seg))
	}
	if len(parts) == 0 {
		parts = []string{"index"}
	}
	parts[len(parts)-1] += ".md"

	return filepath.Join(append([]string{outputDir}, parts...)...)
}
