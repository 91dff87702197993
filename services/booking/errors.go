package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both unknown ids and bookings owned by someone else.
	ErrNotFound        = errors.New("booking not found")
	ErrOverlapConflict = errors.New("you have an overlapping booking at this time")

	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrInvalidInput     = errors.New("invalid booking input")
)

// ValidationError reports malformed or out-of-policy input for one field.
type ValidationError struct {
	Field   string
	Message string
	kind    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

func invalidInput(field, msg string) error {
	return &ValidationError{Field: field, Message: msg, kind: ErrInvalidInput}
}

func invalidTimeRange(field, msg string) error {
	return &ValidationError{Field: field, Message: msg, kind: ErrInvalidTimeRange}
}

// TransientError wraps a repository failure; the caller may retry.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func transient(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}
