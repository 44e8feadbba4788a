// Package store persists mastery state, goals and assessment history in a
// SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the database handle and implements the repository interfaces
// of the mastery, goals and schedule packages.
type Store struct {
	db *sqlx.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas such as foreign_keys are per connection.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: sqlx.NewDb(db, "sqlite")}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db.DB
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// builder returns a SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS symbol_mastery (
		user_id    TEXT    NOT NULL,
		set_id     TEXT    NOT NULL,
		symbol_id  TEXT    NOT NULL,
		state      TEXT    NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (user_id, set_id, symbol_id)
	)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id           TEXT    PRIMARY KEY,
		user_id      TEXT    NOT NULL,
		title        TEXT    NOT NULL,
		description  TEXT    NOT NULL DEFAULT '',
		type         TEXT    NOT NULL,
		target_date  INTEGER NOT NULL,
		is_completed INTEGER NOT NULL DEFAULT 0,
		progress     REAL    NOT NULL DEFAULT 0,
		created_at   INTEGER NOT NULL,
		completed_at INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS goals_user_id ON goals (user_id)`,
	`CREATE TABLE IF NOT EXISTS milestones (
		id           TEXT    PRIMARY KEY,
		goal_id      TEXT    NOT NULL REFERENCES goals (id) ON DELETE CASCADE,
		position     INTEGER NOT NULL,
		title        TEXT    NOT NULL,
		description  TEXT    NOT NULL DEFAULT '',
		is_completed INTEGER NOT NULL DEFAULT 0,
		progress     REAL    NOT NULL DEFAULT 0,
		completed_at INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS milestones_goal_id ON milestones (goal_id)`,
	`CREATE TABLE IF NOT EXISTS assessment_history (
		sequence      INTEGER PRIMARY KEY AUTOINCREMENT,
		assessment_id TEXT    NOT NULL UNIQUE,
		user_id       TEXT    NOT NULL,
		set_id        TEXT    NOT NULL,
		type          TEXT    NOT NULL,
		accuracy      REAL    NOT NULL,
		mastery_level TEXT    NOT NULL,
		completed_at  INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS assessment_history_user_set ON assessment_history (user_id, set_id, completed_at)`,
	`CREATE TABLE IF NOT EXISTS assessment_results (
		assessment_id TEXT    PRIMARY KEY,
		user_id       TEXT    NOT NULL,
		set_id        TEXT    NOT NULL,
		saved_at      INTEGER NOT NULL,
		data          TEXT    NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' || r == '(' {
			return s[:i]
		}
	}
	return s
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. WORDPATH_DB environment variable
// 2. $XDG_DATA_HOME/wordpath/wordpath.db
// 3. ~/.local/share/wordpath/wordpath.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("WORDPATH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "wordpath", "wordpath.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// Timestamps are stored as unix milliseconds.

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func fromNullMillis(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromMillis(n.Int64)
	return &t
}
