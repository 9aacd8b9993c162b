package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recipe-box/internal/database"
)

// SQLiteStore keeps blobs in the kv_entries table.
type SQLiteStore struct {
	db *database.DB
}

// NewSQLiteStore creates a SQLiteStore on an already migrated database.
func NewSQLiteStore(db *database.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get reads the blob stored under key.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.SQL.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read kv entry: %w", err)
	}
	return present(value), nil
}

// Set upserts the blob for key.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.SQL.ExecContext(ctx, query, key, present(value), database.FormatTime(time.Now())); err != nil {
		return fmt.Errorf("failed to write kv entry: %w", err)
	}
	return nil
}

// Remove deletes the entry for key.
func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.SQL.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete kv entry: %w", err)
	}
	return nil
}
