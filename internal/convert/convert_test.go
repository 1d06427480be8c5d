// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hateclip/pkg/types"
)

func TestHTMLConverter(t *testing.T) {
	html := `<html><body>
		<h1>Example Page</h1>
		<p>Some <strong>bold</strong> text and a <a href="https://example.com/ref">link</a>.</p>
	</body></html>`

	md, err := HTMLConverter{}.Convert([]byte(html), "https://example.com/page")
	require.NoError(t, err)

	assert.Contains(t, md, "# Example Page")
	assert.Contains(t, md, "**bold**")
	assert.Contains(t, md, "https://example.com/ref")
}

func TestHTMLConverter_EmptyContent(t *testing.T) {
	_, err := HTMLConverter{}.Convert([]byte(""), "https://example.com/empty")
	require.Error(t, err)
}

func TestHTMLConverter_NoConvertibleContent(t *testing.T) {
	_, err := HTMLConverter{}.Convert([]byte("<html><body><script>1</script></body></html>"), "https://example.com/script")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty output")
}

func TestAddFrontmatter(t *testing.T) {
	bm := types.Bookmark{
		EID:   "4774670471",
		URL:   "https://example.com/page",
		Title: "Example Page",
		Tags:  []string{"obsidian", "go"},
	}
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	got := AddFrontmatter(bm, "# Body\n", now)

	assert.True(t, strings.HasPrefix(got, "---\n"), "frontmatter must lead the note")
	assert.Contains(t, got, `title: "Example Page"`)
	assert.Contains(t, got, `url: "https://example.com/page"`)
	assert.Contains(t, got, `eid: "4774670471"`)
	assert.Contains(t, got, `tags: ["obsidian", "go"]`)
	assert.Contains(t, got, `clipped_at: "2026-08-25T12:00:00Z"`)
	assert.True(t, strings.HasSuffix(got, "---\n\n# Body\n"), "body must follow the frontmatter unchanged")
}

func TestAddFrontmatter_NoTags(t *testing.T) {
	bm := types.Bookmark{EID: "1", URL: "https://example.com", Title: "T"}
	got := AddFrontmatter(bm, "body", time.Now())
	assert.NotContains(t, got, "tags:")
}
