// Package sqlite provides a SQLite-backed snapshot store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dshills/edtr/internal/document"
	"github.com/dshills/edtr/internal/storage"
	"github.com/dshills/edtr/internal/storage/sqlite/migrations"
)

// Store persists snapshots in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ storage.SnapshotStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for SavedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite snapshot store and applies embedded migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &Store{sqlDB: sqlDB, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save writes snap, replacing any snapshot with the same name.
// A zero SavedAt is set to the current time.
func (s *Store) Save(ctx context.Context, snap storage.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := strings.TrimSpace(snap.Name)
	if name == "" {
		return fmt.Errorf("snapshot name is required")
	}
	docs := snap.Documents
	if docs == nil {
		docs = document.Store{}
	}
	payload, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", name, err)
	}
	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = s.now()
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO snapshots (name, documents, focus, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   documents = excluded.documents,
		   focus = excluded.focus,
		   saved_at = excluded.saved_at`,
		name, string(payload), snap.Focus, toMillis(savedAt),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	return nil
}

// Load returns the snapshot saved under name, or storage.ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) (storage.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return storage.Snapshot{}, err
	}
	name = strings.TrimSpace(name)

	var (
		payload string
		snap    = storage.Snapshot{Name: name}
		savedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT documents, focus, saved_at FROM snapshots WHERE name = ?`, name,
	).Scan(&payload, &snap.Focus, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Snapshot{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("load snapshot %s: %w", name, err)
	}

	if err := json.Unmarshal([]byte(payload), &snap.Documents); err != nil {
		return storage.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", name, err)
	}
	snap.SavedAt = fromMillis(savedAt)
	return snap, nil
}

// List returns saved snapshot names in order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name FROM snapshots ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan snapshot name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a snapshot. Deleting a missing name returns storage.ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", name, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
