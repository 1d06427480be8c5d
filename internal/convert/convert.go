// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns fetched page content into Markdown note bodies.
package convert

import (
	"fmt"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/pdiddy/hateclip/pkg/types"
)

// Converter transforms fetched page content into Markdown text. The
// pipeline depends on this interface so tests can substitute canned output.
type Converter interface {
	// Convert takes the raw page content and its source URL and returns
	// the Markdown body.
	Convert(content []byte, pageURL string) (string, error)
}

// HTMLConverter converts HTML pages using the html-to-markdown library.
type HTMLConverter struct{}

// Convert renders content as Markdown. Output that is empty after
// trimming is an error: it means the page had no convertible content.
func (HTMLConverter) Convert(content []byte, pageURL string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(string(content))
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", pageURL, err)
	}
	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("conversion produced empty output for %s", pageURL)
	}
	return markdown, nil
}

// AddFrontmatter prepends YAML frontmatter describing the source bookmark
// to the converted Markdown body.
func AddFrontmatter(bm types.Bookmark, body string, now time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", bm.Title)
	fmt.Fprintf(&b, "url: %q\n", bm.URL)
	fmt.Fprintf(&b, "eid: %q\n", bm.EID)
	if len(bm.Tags) > 0 {
		quoted := make([]string, len(bm.Tags))
		for i, tag := range bm.Tags {
			quoted[i] = fmt.Sprintf("%q", tag)
		}
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(quoted, ", "))
	}
	fmt.Fprintf(&b, "clipped_at: %q\n", now.UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String()
}
