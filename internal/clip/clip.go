// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clip orchestrates the bookmark-to-note pipeline: fetch each
// tagged bookmark's page, convert it to Markdown, write the note, record
// it in the archive, and optionally delete the remote bookmark.
package clip

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/hateclip/internal/convert"
	"github.com/pdiddy/hateclip/internal/note"
	"github.com/pdiddy/hateclip/pkg/types"
)

// Fetcher downloads a bookmarked page.
type Fetcher interface {
	Page(ctx context.Context, pageURL string) ([]byte, error)
}

// Deleter removes a bookmark from the remote service.
type Deleter interface {
	Delete(ctx context.Context, pageURL string) error
}

// Archive records processed bookmarks so later runs skip them.
type Archive interface {
	Seen(ctx context.Context, eid string) (bool, error)
	Record(ctx context.Context, bm types.Bookmark, notePath, content string) error
}

// Deps bundles the pipeline's collaborators. Deleter and Archive may be
// nil, in which case deletion and archive bookkeeping are skipped.
type Deps struct {
	Fetcher   Fetcher
	Converter convert.Converter
	Deleter   Deleter
	Archive   Archive

	// Now supplies the run timestamp used for filenames and frontmatter;
	// defaults to time.Now.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// BatchResult holds the outcome of a clip run.
type BatchResult struct {
	Clipped int
	Skipped int
	Failed  int
}

// Total returns the number of bookmarks processed.
func (r BatchResult) Total() int {
	return r.Clipped + r.Skipped + r.Failed
}

// HasFailures reports whether any bookmark failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// One processes a single bookmark fully: fetch, convert, write, record,
// optionally delete. Deletion happens only after the note was written.
// Archive and delete errors do not fail the bookmark; the note on disk is
// the outcome that matters.
func One(ctx context.Context, deps Deps, bm types.Bookmark, cfg types.ClipConfig, w io.Writer) types.ClipStatus {
	label := bm.Title
	if label == "" {
		label = bm.URL
	}

	if bm.URL == "" {
		fmt.Fprintf(w, "skipped: %s (no URL)\n", label)
		return types.ClipSkipped
	}

	if deps.Archive != nil {
		seen, err := deps.Archive.Seen(ctx, bm.EID)
		if err != nil {
			fmt.Fprintf(w, "  warning: archive lookup failed for %s: %v\n", bm.EID, err)
		} else if seen {
			fmt.Fprintf(w, "skipped: %s (already clipped)\n", label)
			return types.ClipSkipped
		}
	}

	content, err := deps.Fetcher.Page(ctx, bm.URL)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", label, err)
		return types.ClipFailed
	}

	markdown, err := deps.Converter.Convert(content, bm.URL)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", label, err)
		return types.ClipFailed
	}

	now := deps.now()
	body := convert.AddFrontmatter(bm, markdown, now)

	path, err := note.Write(cfg.SaveDir, bm, body, now, cfg.DryRun)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", label, err)
		return types.ClipFailed
	}

	if cfg.DryRun {
		fmt.Fprintf(w, "dry-run: would write %s\n", path)
		return types.ClipDone
	}

	if deps.Archive != nil {
		if err := deps.Archive.Record(ctx, bm, path, body); err != nil {
			fmt.Fprintf(w, "  warning: archive record failed for %s: %v\n", bm.EID, err)
		}
	}

	if cfg.DeleteAfterClip && deps.Deleter != nil {
		if err := deps.Deleter.Delete(ctx, bm.URL); err != nil {
			fmt.Fprintf(w, "  warning: delete failed for %s: %v\n", bm.URL, err)
		}
	}

	fmt.Fprintf(w, "clipped: %s -> %s\n", label, path)
	return types.ClipDone
}

// Batch processes bookmarks sequentially, printing per-item status to w
// and a trailing summary. It continues after individual failures and
// applies FetchDelay between consecutive items.
func Batch(ctx context.Context, deps Deps, bookmarks []types.Bookmark, cfg types.ClipConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, bm := range bookmarks {
		if ctx.Err() != nil {
			break
		}
		if i > 0 && cfg.FetchDelay > 0 {
			select {
			case <-ctx.Done():
				return result
			case <-time.After(cfg.FetchDelay):
			}
		}

		switch One(ctx, deps, bm, cfg, w) {
		case types.ClipDone:
			result.Clipped++
		case types.ClipSkipped:
			result.Skipped++
		case types.ClipFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d clipped, %d skipped, %d failed (total: %d)\n",
		result.Clipped, result.Skipped, result.Failed, result.Total())
	return result
}
