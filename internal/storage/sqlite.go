// Package storage provides SQLite-based persistence for the session log.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the session log.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Session is one local or SSH visit: who connected, when, and how many
// games were started before leaving.
type Session struct {
	ID          int64
	User        string
	Remote      string // remote address, "local" for terminal play
	Mode        string // last game mode started, empty if none
	GamesPlayed int
	StartedAt   time.Time
	EndedAt     time.Time // zero while the session is open
}

// Open reports whether the session is still running.
func (s Session) Open() bool {
	return s.EndedAt.IsZero()
}

// Duration returns how long the session lasted, or has lasted so far.
func (s Session) Duration(now time.Time) time.Duration {
	if s.Open() {
		return now.Sub(s.StartedAt)
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Stats aggregates the whole log.
type Stats struct {
	Sessions int
	Games    int
	Users    int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions write concurrently; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Timestamps are unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			remote TEXT NOT NULL,
			mode TEXT NOT NULL DEFAULT '',
			games_played INTEGER NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL,
			ended_at INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(username);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginSession records a new open session and returns its ID.
func (s *Store) BeginSession(user, remote string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO sessions (username, remote, started_at) VALUES (?, ?, ?)",
		user, remote, s.now().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordGame counts one more game started in the session.
func (s *Store) RecordGame(id int64, mode string) error {
	return s.update(
		"UPDATE sessions SET games_played = games_played + 1, mode = ? WHERE id = ?",
		"record game", mode, id,
	)
}

// EndSession closes the session. Ending it twice keeps the first end time.
func (s *Store) EndSession(id int64) error {
	return s.update(
		"UPDATE sessions SET ended_at = COALESCE(ended_at, ?) WHERE id = ?",
		"end session", s.now().UnixMilli(), id,
	)
}

// ErrNoSession is returned when an update targets an unknown session.
var ErrNoSession = errors.New("storage: no such session")

func (s *Store) update(query, what string, args ...any) error {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("storage: cannot %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot %s: %w", what, err)
	}
	if n == 0 {
		return ErrNoSession
	}
	return nil
}

const sessionColumns = "id, username, remote, mode, games_played, started_at, ended_at"

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var (
		sess    Session
		started int64
		ended   sql.NullInt64
	)
	if err := row.Scan(&sess.ID, &sess.User, &sess.Remote, &sess.Mode, &sess.GamesPlayed, &started, &ended); err != nil {
		return Session{}, err
	}
	sess.StartedAt = time.UnixMilli(started)
	if ended.Valid {
		sess.EndedAt = time.UnixMilli(ended.Int64)
	}
	return sess, nil
}

// SessionByID retrieves a session. Returns nil if it does not exist.
func (s *Store) SessionByID(id int64) (*Session, error) {
	sess, err := scanSession(s.db.QueryRow(
		"SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &sess, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+sessionColumns+" FROM sessions ORDER BY started_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// Stats returns totals over every recorded session.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(games_played), 0), COUNT(DISTINCT username) FROM sessions",
	).Scan(&st.Sessions, &st.Games, &st.Users)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	return st, nil
}
