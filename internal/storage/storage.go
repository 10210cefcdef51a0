// Package storage defines snapshot persistence contracts.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/edtr/internal/document"
)

// ErrNotFound indicates a snapshot name has no saved record.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a named copy of the document store and focus.
type Snapshot struct {
	Name      string
	Documents document.Store
	Focus     string
	SavedAt   time.Time
}

// SnapshotStore saves and restores snapshots.
type SnapshotStore interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context, name string) (Snapshot, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Close() error
}
