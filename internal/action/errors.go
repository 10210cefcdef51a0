package action

import (
	"errors"
	"fmt"
)

// ErrInvalidAction indicates an action with missing or malformed fields.
var ErrInvalidAction = errors.New("invalid action")

// InvalidActionError describes why an action was rejected.
type InvalidActionError struct {
	// Type is the type of the rejected action.
	Type Type
	// Field is the offending payload field, if any.
	Field string
	// Reason describes the problem.
	Reason string
	// Err is an underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *InvalidActionError) Error() string {
	msg := "invalid action"
	if e.Type != "" {
		msg = fmt.Sprintf("invalid %s action", e.Type)
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrInvalidAction) succeed.
func (e *InvalidActionError) Is(target error) bool {
	return target == ErrInvalidAction
}

// Unwrap returns the underlying cause.
func (e *InvalidActionError) Unwrap() error {
	return e.Err
}

// Invalid returns an InvalidActionError for a missing or malformed field.
func Invalid(t Type, field, reason string) *InvalidActionError {
	return &InvalidActionError{Type: t, Field: field, Reason: reason}
}

// Rejected wraps a precondition failure for an action of type t.
func Rejected(t Type, err error) *InvalidActionError {
	return &InvalidActionError{Type: t, Err: err}
}
