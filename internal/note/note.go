// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package note derives filesystem-safe note filenames and writes Markdown
// notes into the vault directory.
package note

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/pdiddy/hateclip/pkg/types"
)

// maxNameRunes caps the sanitized title portion of a filename so the full
// name stays well under common filesystem limits.
const maxNameRunes = 120

// Filename derives the note filename for a bookmark: the run date followed
// by the sanitized title, e.g. "20260825_Example Page.md". When the title
// sanitizes to nothing it falls back to a slug of the URL, then to the eid.
func Filename(bm types.Bookmark, now time.Time) string {
	name := Sanitize(bm.Title)
	if name == "" {
		name = urlSlug(bm.URL)
	}
	if name == "" {
		name = bm.EID
	}
	if name == "" {
		name = "untitled"
	}
	return now.Format("20060102") + "_" + name + ".md"
}

// Sanitize strips characters that are unsafe in filenames on common
// filesystems: path separators, Windows-reserved punctuation, and control
// characters. Leading and trailing dots and spaces are trimmed and the
// result is capped at maxNameRunes runes.
func Sanitize(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r < 0x20 || r == 0x7f || unicode.Is(unicode.Cf, r):
			// drop control and format characters
		case strings.ContainsRune(`<>:"/\|?*`, r):
			// drop reserved punctuation
		default:
			b.WriteRune(r)
		}
	}

	name := strings.TrimSpace(b.String())
	name = strings.Trim(name, ". ")

	runes := []rune(name)
	if len(runes) > maxNameRunes {
		name = strings.TrimSpace(string(runes[:maxNameRunes]))
	}
	return name
}

// urlSlug builds a filename fragment from a URL's host and path.
func urlSlug(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	slug := u.Host + strings.TrimRight(u.Path, "/")
	mapped := strings.Map(func(r rune) rune {
		if r == '/' || r == '.' {
			return '-'
		}
		return r
	}, slug)
	return Sanitize(strings.Trim(mapped, "-"))
}

// Write stores content as a note for bm under dir, returning the path
// written. If the derived name already exists the bookmark's eid is
// appended before the extension, so two bookmarks with colliding titles
// get distinct, deterministic names. In dry-run mode no file I/O happens
// at all; the returned path is where the note would have gone.
func Write(dir string, bm types.Bookmark, content string, now time.Time, dryRun bool) (string, error) {
	name := Filename(bm, now)
	path := filepath.Join(dir, name)

	if dryRun {
		return path, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating save directory %s: %w", dir, err)
	}

	if _, err := os.Stat(path); err == nil {
		alt := strings.TrimSuffix(name, ".md") + "_" + bm.EID + ".md"
		path = filepath.Join(dir, alt)
	}

	if err := writeFileAtomic(path, []byte(content)); err != nil {
		return "", err
	}
	return path, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so a failed run never leaves a partial note.
func writeFileAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".note-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing note: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
