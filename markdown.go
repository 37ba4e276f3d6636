package main

import (
	"fmt"
	"strings"

	html2md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"

	"jekyll2astro/jekyll"
)

// ConvertHTMLToMarkdown converts the body of an HTML post to Markdown.
// siteURL, when set, is stripped from links so they become site relative.
func ConvertHTMLToMarkdown(html, siteURL string) (string, error) {
	converter := html2md.NewConverter("", true, nil)

	// Rule to make absolute links to the old site relative
	if siteURL != "" {
		converter.AddRules(
			html2md.Rule{
				Filter: []string{"a"},
				Replacement: func(content string, selec *goquery.Selection, opt *html2md.Options) *string {
					href, ok := selec.Attr("href")
					if !ok || !strings.HasPrefix(href, siteURL) {
						return nil
					}
					newHref := "/" + strings.TrimLeft(strings.TrimPrefix(href, siteURL), "/")
					md := fmt.Sprintf("[%s](%s)", content, newHref)
					return &md
				},
			},
		)
	}

	// <figure><img><figcaption> as written by Jekyll include templates
	converter.AddRules(
		html2md.Rule{
			Filter: []string{"figure"},
			Replacement: func(content string, selec *goquery.Selection, opt *html2md.Options) *string {
				img := selec.Find("img").First()
				src, ok := img.Attr("src")
				if !ok {
					return nil
				}
				alt, _ := img.Attr("alt")
				caption := strings.TrimSpace(selec.Find("figcaption").Text())

				md := fmt.Sprintf("\n\n![%s](%s)\n\n", alt, src)
				if caption != "" {
					md = fmt.Sprintf("\n\n![%s](%s \"%s\")\n\n", alt, src, strings.ReplaceAll(caption, `"`, `'`))
				}
				return &md
			},
		},
	)

	// Add rule for iframes
	converter.AddRules(
		html2md.Rule{
			Filter: []string{"iframe"},
			Replacement: func(content string, selec *goquery.Selection, opt *html2md.Options) *string {
				src, ok := selec.Attr("src")
				if !ok {
					return nil
				}
				md := fmt.Sprintf("\n\n[View embedded content](%s)\n\n", src)
				return &md
			},
		},
	)

	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("conversion error: %w", err)
	}

	return markdown, nil
}

// GenerateFrontmatter renders a normalized post's frontmatter as a YAML block.
// Resolved dates are written as plain YAML timestamps, which Astro reads back
// as Date values.
func GenerateFrontmatter(data jekyll.Frontmatter) (string, error) {
	b, err := yaml.Marshal(map[string]any(data))
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	return "---\n" + string(b) + "---\n\n", nil
}
