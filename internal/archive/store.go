// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists a ledger of clipped bookmarks in SQLite with an
// FTS5 index over note content. The pipeline consults it to skip bookmarks
// that were already clipped in a previous run; the history command
// queries it.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/hateclip/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "clips.db"
)

// Clip is one archived bookmark-to-note record.
type Clip struct {
	EID       string
	URL       string
	Title     string
	Tags      []string
	NotePath  string
	ClippedAt time.Time
}

// QueryOptions filters history queries. An empty Query lists records
// newest first; a non-empty Query runs FTS5 full-text search over note
// content.
type QueryOptions struct {
	Query string
	Tag   string
	Limit int
}

// Store manages the clip archive SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the archive database at
// archiveDir/index/clips.db, creating the schema if needed.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.ArchiveDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS clips (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			eid TEXT NOT NULL UNIQUE,
			url TEXT NOT NULL,
			title TEXT,
			tags TEXT,
			note_path TEXT NOT NULL,
			content TEXT NOT NULL,
			clipped_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clips_clipped_at ON clips(clipped_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='clips_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE clips_fts USING fts5(content, title, content=clips, content_rowid=rowid)`,
			`CREATE TRIGGER clips_ai AFTER INSERT ON clips BEGIN
				INSERT INTO clips_fts(rowid, content, title) VALUES (new.rowid, new.content, new.title);
			END`,
			`CREATE TRIGGER clips_ad AFTER DELETE ON clips BEGIN
				INSERT INTO clips_fts(clips_fts, rowid, content, title) VALUES('delete', old.rowid, old.content, old.title);
			END`,
			`CREATE TRIGGER clips_au AFTER UPDATE ON clips BEGIN
				INSERT INTO clips_fts(clips_fts, rowid, content, title) VALUES('delete', old.rowid, old.content, old.title);
				INSERT INTO clips_fts(rowid, content, title) VALUES (new.rowid, new.content, new.title);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Record stores (or replaces) the archive entry for a clipped bookmark.
func (s *Store) Record(ctx context.Context, bm types.Bookmark, notePath, content string) error {
	tags, err := json.Marshal(bm.Tags)
	if err != nil {
		return fmt.Errorf("marshaling tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO clips (eid, url, title, tags, note_path, content, clipped_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(eid) DO UPDATE SET
			url = excluded.url,
			title = excluded.title,
			tags = excluded.tags,
			note_path = excluded.note_path,
			content = excluded.content,
			clipped_at = excluded.clipped_at`,
		bm.EID, bm.URL, bm.Title, string(tags), notePath, content,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording clip %s: %w", bm.EID, err)
	}
	return nil
}

// Seen reports whether a bookmark with this eid was already archived.
func (s *Store) Seen(ctx context.Context, eid string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM clips WHERE eid = ?`, eid).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking clip %s: %w", eid, err)
	}
	return n > 0, nil
}

// Search returns archived clips matching opts, newest first. With a
// non-empty Query it ranks by FTS5 relevance instead.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Clip, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		rows *sql.Rows
		err  error
	)
	if opts.Query != "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT c.eid, c.url, c.title, c.tags, c.note_path, c.clipped_at
			 FROM clips_fts f
			 JOIN clips c ON c.rowid = f.rowid
			 WHERE clips_fts MATCH ?
			 ORDER BY rank
			 LIMIT ?`, opts.Query, limit)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT eid, url, title, tags, note_path, clipped_at
			 FROM clips
			 ORDER BY clipped_at DESC
			 LIMIT ?`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var clips []Clip
	for rows.Next() {
		var (
			c         Clip
			tagsJSON  string
			clippedAt string
		)
		if err := rows.Scan(&c.EID, &c.URL, &c.Title, &tagsJSON, &c.NotePath, &clippedAt); err != nil {
			return nil, fmt.Errorf("scanning clip: %w", err)
		}
		if tagsJSON != "" {
			if err := json.Unmarshal([]byte(tagsJSON), &c.Tags); err != nil {
				return nil, fmt.Errorf("parsing tags for %s: %w", c.EID, err)
			}
		}
		if t, parseErr := time.Parse(time.RFC3339, clippedAt); parseErr == nil {
			c.ClippedAt = t
		}
		if opts.Tag != "" && !hasTag(c.Tags, opts.Tag) {
			continue
		}
		clips = append(clips, c)
	}
	return clips, rows.Err()
}

// List returns archived clips without full-text filtering.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]Clip, error) {
	opts.Query = ""
	return s.Search(ctx, opts)
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}
