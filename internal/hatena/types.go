// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hatena

import (
	"strconv"
	"time"

	"github.com/pdiddy/hateclip/pkg/types"
)

// Hatena my-search API JSON structures.
type searchResponse struct {
	Bookmarks []searchBookmark `json:"bookmarks"`
	Error     string           `json:"error"`
}

type searchBookmark struct {
	Entry     searchEntry `json:"entry"`
	Tags      []string    `json:"tags"`
	Comment   string      `json:"comment"`
	Timestamp int64       `json:"timestamp"`
}

type searchEntry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	EID   int64  `json:"eid"`
}

// toBookmark maps one API record onto the domain type.
func (b searchBookmark) toBookmark() types.Bookmark {
	bm := types.Bookmark{
		EID:     strconv.FormatInt(b.Entry.EID, 10),
		URL:     b.Entry.URL,
		Title:   b.Entry.Title,
		Tags:    b.Tags,
		Comment: b.Comment,
	}
	if b.Timestamp > 0 {
		bm.CreatedAt = time.Unix(b.Timestamp, 0).UTC()
	}
	return bm
}
