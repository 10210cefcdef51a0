package lua

import "errors"

// Errors for Lua script operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrBadDeclaration is returned when register receives an unusable table.
	ErrBadDeclaration = errors.New("invalid plugin declaration")
)
