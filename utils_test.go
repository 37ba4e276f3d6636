package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPath(t *testing.T) {
	cases := []struct {
		route string
		want  string
	}{
		{"2023/01/foo-bar-baz", filepath.Join("out", "2023", "01", "foo-bar-baz.md")},
		{"foo", filepath.Join("out", "foo.md")},
		{"", filepath.Join("out", "index.md")},
		{"../../etc/x", filepath.Join("out", "etc", "x.md")},
		{"a/what?.html", filepath.Join("out", "a", "what_.html.md")},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, OutputPath("out", tc.route), tc.route)
	}
}

func TestSegmentFilename(t *testing.T) {
	assert.Equal(t, "a_b_c", segmentFilename(`a\b:c`))
	assert.Equal(t, "tab_here", segmentFilename("tab\there"))
	assert.Equal(t, "café-2023", segmentFilename("café-2023"))
}
