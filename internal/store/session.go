package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var ErrBinaryValue = errors.New("session values must be text")

// checkSessionValue guards the session stores against values that are not
// plain text. Whether a value still holds live references is the encoder's
// concern; user text may legitimately mention anything.
func checkSessionValue(value string) error {
	if !utf8.ValidString(value) || strings.IndexByte(value, 0) >= 0 {
		return ErrBinaryValue
	}
	return nil
}

// Session is the volatile text store used for drafts. It lives in its own
// database file, by default in the temp dir.
type Session struct {
	db *sql.DB
}

func NewSession(path string) (*Session, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	const ddl = `
	CREATE TABLE IF NOT EXISTS session_kv (
		key         TEXT PRIMARY KEY,
		value       TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);
	`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session table: %w", err)
	}
	return &Session{db: db}, nil
}

// NewSessionMemory creates an in-memory session store for testing.
func NewSessionMemory() (*Session, error) {
	return NewSession(":memory:")
}

func (s *Session) Close() error {
	return s.db.Close()
}

func (s *Session) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session_kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get session %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Session) Set(ctx context.Context, key, value string) error {
	if err := checkSessionValue(value); err != nil {
		return fmt.Errorf("set session %q: %w", key, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("set session %q: %w", key, err)
	}
	return nil
}

func (s *Session) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("remove session %q: %w", key, err)
	}
	return nil
}
