package store

import (
	"context"
	"database/sql"
	"fmt"
)

// GetLegacy reads a value from the deprecated key/value table.
func (s *Store) GetLegacy(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get legacy %q: %w", key, err)
	}
	return value, true, nil
}

// SetLegacy writes to the deprecated table. Only tests and imports of old
// data use it.
func (s *Store) SetLegacy(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set legacy %q: %w", key, err)
	}
	return nil
}

func (s *Store) RemoveLegacy(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("remove legacy %q: %w", key, err)
	}
	return nil
}
