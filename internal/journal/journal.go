// Package journal keeps a searchable history of finished analyses.
//
// Analysis state itself lives in memory and is lost on restart; the
// journal only stores a compact text summary of each analysis once it
// reaches a completed or evaluated state. It uses SQLite with FTS5 so
// past conclusions can be found by keyword across server restarts.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// dbFile is the database file name inside the data directory.
const dbFile = "journal.db"

// ─── Types ───────────────────────────────────────────────────────────────────

// Entry is one journaled analysis summary.
type Entry struct {
	ID            int64   `json:"id"`
	Framework     string  `json:"framework"`
	AnalysisID    string  `json:"analysis_id"`
	TopicKey      string  `json:"topic_key"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	RevisionCount int     `json:"revision_count"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	Rank          float64 `json:"rank,omitempty"`
}

// RecordParams describes an analysis summary to store.
type RecordParams struct {
	Framework  string
	AnalysisID string
	Title      string
	Content    string
}

// SearchOptions narrows a search.
type SearchOptions struct {
	Framework string
	Limit     int
}

// FrameworkCount is the number of entries for one framework.
type FrameworkCount struct {
	Framework string `json:"framework"`
	Entries   int    `json:"entries"`
}

// Stats aggregates the journal.
type Stats struct {
	TotalEntries   int              `json:"total_entries"`
	TotalRevisions int              `json:"total_revisions"`
	ByFramework    []FrameworkCount `json:"by_framework"`
	LastUpdated    string           `json:"last_updated,omitempty"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds journal configuration.
type Config struct {
	DataDir          string
	MaxEntryLength   int
	MaxSearchResults int
}

// DefaultConfig returns the default journal configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:          filepath.Join(home, ".analysis-support"),
		MaxEntryLength:   2000,
		MaxSearchResults: 20,
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the journal backed by SQLite + FTS5.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates the data directory if needed, opens SQLite in WAL mode and
// runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("journal: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(cfg.DataDir, dbFile))
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("journal: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			framework      TEXT    NOT NULL,
			analysis_id    TEXT    NOT NULL,
			topic_key      TEXT    NOT NULL UNIQUE,
			title          TEXT    NOT NULL,
			content        TEXT    NOT NULL,
			revision_count INTEGER NOT NULL DEFAULT 1,
			created_at     TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at     TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_entries_framework ON entries(framework);
		CREATE INDEX IF NOT EXISTS idx_entries_updated   ON entries(updated_at DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			title,
			content,
			framework,
			content='entries',
			content_rowid='id'
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS triggers are created once.
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='entries_fts_insert'",
	).Scan(&name)
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	triggers := `
		CREATE TRIGGER entries_fts_insert AFTER INSERT ON entries BEGIN
			INSERT INTO entries_fts(rowid, title, content, framework)
			VALUES (new.id, new.title, new.content, new.framework);
		END;

		CREATE TRIGGER entries_fts_delete AFTER DELETE ON entries BEGIN
			INSERT INTO entries_fts(entries_fts, rowid, title, content, framework)
			VALUES ('delete', old.id, old.title, old.content, old.framework);
		END;

		CREATE TRIGGER entries_fts_update AFTER UPDATE ON entries BEGIN
			INSERT INTO entries_fts(entries_fts, rowid, title, content, framework)
			VALUES ('delete', old.id, old.title, old.content, old.framework);
			INSERT INTO entries_fts(rowid, title, content, framework)
			VALUES (new.id, new.title, new.content, new.framework);
		END;
	`
	_, err = s.db.Exec(triggers)
	return err
}

// ─── Entries ─────────────────────────────────────────────────────────────────

// TopicKey is the upsert key of an analysis: "<framework>/<analysis id>".
func TopicKey(framework, analysisID string) string {
	return strings.ToLower(strings.TrimSpace(framework)) + "/" + strings.TrimSpace(analysisID)
}

// Record stores the summary of an analysis. A second record for the same
// analysis replaces the content and bumps the revision count.
func (s *Store) Record(p RecordParams) (int64, error) {
	if p.Framework == "" || p.AnalysisID == "" {
		return 0, errors.New("journal: framework and analysis id are required")
	}
	content := truncate(p.Content, s.cfg.MaxEntryLength)
	key := TopicKey(p.Framework, p.AnalysisID)

	var id int64
	err := s.db.QueryRow(
		`INSERT INTO entries (framework, analysis_id, topic_key, title, content)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(topic_key) DO UPDATE SET
		     title = excluded.title,
		     content = excluded.content,
		     revision_count = entries.revision_count + 1,
		     updated_at = datetime('now')
		 RETURNING id`,
		strings.ToLower(p.Framework), p.AnalysisID, key, p.Title, content,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("journal: record %s: %w", key, err)
	}
	return id, nil
}

// Get returns the entry stored under topicKey.
func (s *Store) Get(topicKey string) (*Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, framework, analysis_id, topic_key, title, content, revision_count, created_at, updated_at, 0
		 FROM entries WHERE topic_key = ?`, topicKey)
	if err != nil {
		return nil, fmt.Errorf("journal: get %s: %w", topicKey, err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, sql.ErrNoRows
	}
	return &entries[0], nil
}

// ─── Search (FTS5) ───────────────────────────────────────────────────────────

// Search runs a full-text query. An empty or whitespace-only query
// returns the most recently updated entries instead.
func (s *Store) Search(query string, opts SearchOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > s.cfg.MaxSearchResults {
		limit = s.cfg.MaxSearchResults
	}

	ftsQuery := sanitizeFTS(query)
	if ftsQuery == "" {
		return s.searchRecent(opts, limit)
	}

	sqlStr := `
		SELECT e.id, e.framework, e.analysis_id, e.topic_key, e.title, e.content,
		       e.revision_count, e.created_at, e.updated_at, fts.rank
		FROM entries_fts fts
		JOIN entries e ON e.id = fts.rowid
		WHERE entries_fts MATCH ?
	`
	args := []any{ftsQuery}
	if opts.Framework != "" {
		sqlStr += " AND e.framework = ?"
		args = append(args, strings.ToLower(opts.Framework))
	}
	sqlStr += " ORDER BY fts.rank LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: search: %w", err)
	}
	return scanEntries(rows)
}

func (s *Store) searchRecent(opts SearchOptions, limit int) ([]Entry, error) {
	sqlStr := `
		SELECT id, framework, analysis_id, topic_key, title, content,
		       revision_count, created_at, updated_at, 0 AS rank
		FROM entries
	`
	var args []any
	if opts.Framework != "" {
		sqlStr += " WHERE framework = ?"
		args = append(args, strings.ToLower(opts.Framework))
	}
	sqlStr += " ORDER BY updated_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: search recent: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.Framework, &e.AnalysisID, &e.TopicKey, &e.Title, &e.Content,
			&e.RevisionCount, &e.CreatedAt, &e.UpdatedAt, &e.Rank,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ─── Stats ───────────────────────────────────────────────────────────────────

// Stats returns aggregate journal statistics.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{ByFramework: []FrameworkCount{}}

	var last sql.NullString
	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(revision_count), 0), MAX(updated_at) FROM entries",
	).Scan(&stats.TotalEntries, &stats.TotalRevisions, &last)
	if err != nil {
		return nil, fmt.Errorf("journal: stats: %w", err)
	}
	stats.LastUpdated = last.String

	rows, err := s.db.Query(
		"SELECT framework, COUNT(*) FROM entries GROUP BY framework ORDER BY COUNT(*) DESC, framework",
	)
	if err != nil {
		return nil, fmt.Errorf("journal: stats by framework: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var fc FrameworkCount
		if err := rows.Scan(&fc.Framework, &fc.Entries); err != nil {
			return nil, err
		}
		stats.ByFramework = append(stats.ByFramework, fc)
	}
	return stats, rows.Err()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// sanitizeFTS quotes every word so user input can't inject FTS5 syntax.
func sanitizeFTS(query string) string {
	var words []string
	for _, w := range strings.Fields(query) {
		w = strings.ReplaceAll(w, `"`, "")
		if w != "" {
			words = append(words, `"`+w+`"`)
		}
	}
	return strings.Join(words, " ")
}

// truncate cuts s to max runes, marking the cut. max <= 0 disables it.
func truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "... [truncated]"
}
