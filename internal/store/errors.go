package store

import "errors"

// Store errors.
var (
	// ErrCommitterStopped indicates the committer has been stopped.
	ErrCommitterStopped = errors.New("store: committer is stopped")
)
