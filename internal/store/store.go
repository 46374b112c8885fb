// Package store implements the daybook persistence layer.
//
// It uses SQLite via database/sql with WAL mode and inline migrations.
// Each entity gets a thin repository of store methods; anything beyond
// basic selects goes through the structured query engine instead.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is a package-level variable for testability.
// Tests can replace this to control time in assertions.
var timeNow = time.Now

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir: filepath.Join(home, ".daybook"),
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the daybook database handle.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates a Store with the given configuration. It creates the data
// directory if needed, opens SQLite with WAL mode, and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "daybook.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}

	return s, nil
}

// DB exposes the underlying connection for the query engine.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS employers (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			website    TEXT,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS clients (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			employer_id   TEXT,
			contact_email TEXT,
			created_at    TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (employer_id) REFERENCES employers(id)
		);

		CREATE TABLE IF NOT EXISTS projects (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			client_id  TEXT,
			status     TEXT NOT NULL DEFAULT 'active',
			tags       TEXT,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (client_id) REFERENCES clients(id)
		);

		CREATE TABLE IF NOT EXISTS people (
			id         TEXT PRIMARY KEY,
			full_name  TEXT NOT NULL,
			email      TEXT,
			company    TEXT,
			notes      TEXT,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS work_sessions (
			id              TEXT PRIMARY KEY,
			project_id      TEXT,
			description     TEXT NOT NULL,
			duration_hours  TEXT NOT NULL,
			session_date    TEXT NOT NULL,
			privacy_level   TEXT NOT NULL DEFAULT 'public',
			tags            TEXT,
			on_behalf_of_id TEXT,
			created_at      TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (project_id)      REFERENCES projects(id),
			FOREIGN KEY (on_behalf_of_id) REFERENCES people(id)
		);

		CREATE TABLE IF NOT EXISTS meetings (
			id            TEXT PRIMARY KEY,
			title         TEXT NOT NULL,
			agenda        TEXT,
			meeting_date  TEXT NOT NULL,
			project_id    TEXT,
			privacy_level TEXT NOT NULL DEFAULT 'public',
			tags          TEXT,
			created_at    TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE TABLE IF NOT EXISTS meeting_attendees (
			id         TEXT PRIMARY KEY,
			meeting_id TEXT NOT NULL,
			person_id  TEXT NOT NULL,
			role       TEXT,
			FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE,
			FOREIGN KEY (person_id)  REFERENCES people(id)
		);

		CREATE TABLE IF NOT EXISTS reminders (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			message      TEXT,
			due_at       TEXT NOT NULL,
			frequency    TEXT,
			day_of_week  INTEGER,
			day_of_month INTEGER,
			completed_at TEXT,
			created_at   TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS notes (
			id            TEXT PRIMARY KEY,
			title         TEXT NOT NULL,
			content       TEXT NOT NULL,
			note_date     TEXT NOT NULL,
			privacy_level TEXT NOT NULL DEFAULT 'public',
			tags          TEXT,
			created_at    TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS action_items (
			id          TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			status      TEXT NOT NULL DEFAULT 'open',
			priority    INTEGER,
			project_id  TEXT,
			due_date    TEXT,
			tags        TEXT,
			created_at  TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id          TEXT PRIMARY KEY,
			url         TEXT NOT NULL,
			title       TEXT,
			description TEXT,
			tags        TEXT,
			created_at  TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_project  ON work_sessions(project_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_date     ON work_sessions(session_date);
		CREATE INDEX IF NOT EXISTS idx_meetings_date     ON meetings(meeting_date);
		CREATE INDEX IF NOT EXISTS idx_meetings_project  ON meetings(project_id);
		CREATE INDEX IF NOT EXISTS idx_attendees_meeting ON meeting_attendees(meeting_id);
		CREATE INDEX IF NOT EXISTS idx_attendees_person  ON meeting_attendees(person_id);
		CREATE INDEX IF NOT EXISTS idx_reminders_due     ON reminders(due_at);
		CREATE INDEX IF NOT EXISTS idx_notes_date        ON notes(note_date);
		CREATE INDEX IF NOT EXISTS idx_actions_project   ON action_items(project_id);
		CREATE INDEX IF NOT EXISTS idx_actions_status    ON action_items(status);
	`
	_, err := s.db.Exec(schema)
	return err
}
