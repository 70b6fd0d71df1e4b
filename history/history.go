package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS recent_files (
	path       TEXT PRIMARY KEY,
	opened_at  INTEGER NOT NULL,
	session_id TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS recent_files_opened_at ON recent_files (opened_at DESC);
`

// Entry is one recently used document.
type Entry struct {
	Path      string
	OpenedAt  time.Time
	SessionID string
}

// Name is the entry's base name.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// Store keeps the recent-files list in a SQLite database.
type Store struct {
	db     *sql.DB
	limit  int
	now    func() time.Time
	logger zerolog.Logger
}

// Open opens (creating if needed) the history database at path. Lists are
// trimmed to limit entries.
func Open(path string, limit int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history database ping failed: %w", err)
	}
	// one connection keeps writes serialized on the single UI goroutine
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &Store{
		db:     db,
		limit:  limit,
		now:    time.Now,
		logger: log.With().Str("component", "history.Store").Str("path", path).Logger(),
	}, nil
}

// Record marks path as used now by the given session.
func (s *Store) Record(path, sessionID string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	_, err = s.db.Exec(
		`INSERT INTO recent_files (path, opened_at, session_id) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at, session_id = excluded.session_id`,
		abs, s.now().UnixNano(), sessionID,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("file", abs).Msg("record failed")
		return fmt.Errorf("record %s: %w", abs, err)
	}
	s.logger.Debug().Str("file", abs).Msg("recorded")
	return s.trim()
}

// List returns the most recently used documents, newest first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT path, opened_at, session_id FROM recent_files ORDER BY opened_at DESC LIMIT ?`,
		s.limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var openedAt int64
		if err := rows.Scan(&e.Path, &openedAt, &e.SessionID); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		e.OpenedAt = time.Unix(0, openedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return entries, nil
}

// Remove drops path from the list.
func (s *Store) Remove(path string) error {
	if _, err := s.db.Exec(`DELETE FROM recent_files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func (s *Store) trim() error {
	_, err := s.db.Exec(
		`DELETE FROM recent_files WHERE path NOT IN
		 (SELECT path FROM recent_files ORDER BY opened_at DESC LIMIT ?)`,
		s.limit,
	)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
