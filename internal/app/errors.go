package app

import "errors"

// Errors returned by the application.
var (
	// ErrNoStorage is returned by snapshot operations when no storage path
	// is configured.
	ErrNoStorage = errors.New("snapshot storage is not configured")

	// ErrClosed is returned when using a closed application.
	ErrClosed = errors.New("application is closed")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
