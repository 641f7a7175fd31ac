// Package sqlite provides a SQLite-backed key-value implementation of the
// storage.SnapshotStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/dropin/internal/models"
	"github.com/mmynk/dropin/internal/storage"
)

// Ensure SQLiteStore implements storage.SnapshotStore
var _ storage.SnapshotStore = (*SQLiteStore)(nil)

// SQLiteStore is a string-keyed store backed by a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// busy_timeout is per connection, so it goes in the DSN rather than a
	// one-off PRAGMA that only reaches one pooled connection.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetItem returns the value stored under key. ok is false if the key has
// never been set.
func (s *SQLiteStore) GetItem(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get item %s: %w", key, err)
	}
	return value, true, nil
}

// SetItem stores value under key, replacing any previous value.
func (s *SQLiteStore) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set item %s: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (s *SQLiteStore) RemoveItem(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove item %s: %w", key, err)
	}
	return nil
}

// LoadRoster reads the roster snapshot.
func (s *SQLiteStore) LoadRoster(ctx context.Context) ([]models.Participant, error) {
	value, _, err := s.GetItem(ctx, storage.RosterKey)
	if err != nil {
		return nil, err
	}
	return storage.DecodeRoster(value)
}

// SaveRoster overwrites the roster snapshot.
func (s *SQLiteStore) SaveRoster(ctx context.Context, participants []models.Participant) error {
	value, err := storage.EncodeRoster(participants)
	if err != nil {
		return err
	}
	return s.SetItem(ctx, storage.RosterKey, value)
}
