package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Document is one stored record: a JSON body plus the binary payloads it
// refers to by id.
type Document struct {
	Body  []byte
	Blobs map[string][]byte
}

// Get returns the document under key, or nil when there is none.
func (s *Store) Get(ctx context.Context, key string) (*Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM records WHERE key = ?`, key).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record %q: %w", key, err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, data FROM payloads WHERE record_key = ?`, key)
	if err != nil {
		return nil, fmt.Errorf("list payloads %q: %w", key, err)
	}
	defer rows.Close()

	doc := &Document{Body: []byte(body), Blobs: make(map[string][]byte)}
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan payload %q: %w", key, err)
		}
		doc.Blobs[id] = data
	}
	return doc, rows.Err()
}

// Set replaces the document under key, payloads included, in one
// transaction.
func (s *Store) Set(ctx context.Context, key string, doc Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set %q: %w", key, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO records (key, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		key, string(doc.Body), now,
	); err != nil {
		return fmt.Errorf("put record %q: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM payloads WHERE record_key = ?`, key); err != nil {
		return fmt.Errorf("clear payloads %q: %w", key, err)
	}
	for id, data := range doc.Blobs {
		if data == nil {
			data = []byte{}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO payloads (record_key, id, data) VALUES (?, ?, ?)`, key, id, data,
		); err != nil {
			return fmt.Errorf("put payload %q/%q: %w", key, id, err)
		}
	}
	return tx.Commit()
}

// Remove deletes the document under key. Removing a missing key is not an
// error.
func (s *Store) Remove(ctx context.Context, key string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin remove %q: %w", key, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM payloads WHERE record_key = ?`, key); err != nil {
		return fmt.Errorf("remove payloads %q: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove record %q: %w", key, err)
	}
	return tx.Commit()
}

// UpdatedAt returns when key was last written.
func (s *Store) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var ts string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM records WHERE key = ?`, key).Scan(&ts)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get record time %q: %w", key, err)
	}
	t, _ := time.Parse(time.RFC3339, ts)
	return t, true, nil
}
