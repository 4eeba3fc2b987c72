// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists sessions to a local SQLite database.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/palaverhq/palaver/internal/model"
)

// ErrNotFound is returned when no row exists for the requested session id.
var ErrNotFound = errors.New("session not found in storage")

const createTableSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL DEFAULT '',
    created_at   TEXT NOT NULL,
    updated_at   TEXT NOT NULL,
    system       TEXT NOT NULL DEFAULT '',
    role_profile TEXT NOT NULL DEFAULT '',
    messages     TEXT NOT NULL DEFAULT '[]',
    usage        TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
`

// =============================================================================
// STORE
// =============================================================================

// Store is the SQLite-backed session archive. One row per session; history
// and usage are stored as JSON blobs since they are only ever read and
// written whole.
type Store struct {
	db *sql.DB
}

// DefaultDBPath returns the default database location inside the data
// directory.
func DefaultDBPath(dataDir string) string {
	return filepath.Join(dataDir, "sessions.db")
}

// NewStore opens (or creates) the database at dbPath and ensures the schema
// exists.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL keeps reads cheap while a save transaction is in flight.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Save writes the session's complete state, replacing any existing row.
func (s *Store) Save(sess *model.Session) error {
	msgJSON, err := json.Marshal(sess.Messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}
	usageJSON, err := json.Marshal(sess.Usage)
	if err != nil {
		return fmt.Errorf("marshal usage: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO sessions
			(id, name, created_at, updated_at, system, role_profile, messages, usage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.Name,
		sess.CreatedAt.Format(time.RFC3339Nano),
		sess.UpdatedAt.Format(time.RFC3339Nano),
		sess.System,
		sess.RoleProfile,
		string(msgJSON),
		string(usageJSON),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SaveAll writes every given session in one transaction.
func (s *Store) SaveAll(sessions []*model.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO sessions
			(id, name, created_at, updated_at, system, role_profile, messages, usage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare save: %w", err)
	}
	defer stmt.Close()

	for _, sess := range sessions {
		msgJSON, err := json.Marshal(sess.Messages)
		if err != nil {
			return fmt.Errorf("marshal messages: %w", err)
		}
		usageJSON, err := json.Marshal(sess.Usage)
		if err != nil {
			return fmt.Errorf("marshal usage: %w", err)
		}
		if _, err := stmt.Exec(
			sess.ID, sess.Name,
			sess.CreatedAt.Format(time.RFC3339Nano),
			sess.UpdatedAt.Format(time.RFC3339Nano),
			sess.System, sess.RoleProfile,
			string(msgJSON), string(usageJSON),
		); err != nil {
			return fmt.Errorf("save session %s: %w", sess.ID, err)
		}
	}
	return tx.Commit()
}

// Load reads one session by id.
func (s *Store) Load(id string) (*model.Session, error) {
	row := s.db.QueryRow(`
		SELECT id, name, created_at, updated_at, system, role_profile, messages, usage
		FROM sessions WHERE id = ?`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return sess, err
}

// LoadAll reads every stored session, oldest first, so adopting them in order
// reproduces the original creation order.
func (s *Store) LoadAll() ([]*model.Session, error) {
	rows, err := s.db.Query(`
		SELECT id, name, created_at, updated_at, system, role_profile, messages, usage
		FROM sessions ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Delete removes a session's row. Deleting an unknown id is not an error; the
// end state is the same.
func (s *Store) Delete(id string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*model.Session, error) {
	var sess model.Session
	var createdAt, updatedAt, msgJSON, usageJSON string

	err := row.Scan(
		&sess.ID, &sess.Name, &createdAt, &updatedAt,
		&sess.System, &sess.RoleProfile, &msgJSON, &usageJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	sess.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

	if err := json.Unmarshal([]byte(msgJSON), &sess.Messages); err != nil {
		return nil, fmt.Errorf("unmarshal messages: %w", err)
	}
	if err := json.Unmarshal([]byte(usageJSON), &sess.Usage); err != nil {
		return nil, fmt.Errorf("unmarshal usage: %w", err)
	}
	if sess.Messages == nil {
		sess.Messages = make([]model.Turn, 0)
	}
	if sess.Usage == nil {
		sess.Usage = make([]model.UsageSnapshot, 0)
	}
	return &sess, nil
}
