package user

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// UserError is a caller-facing failure. Kind selects the HTTP status; Message is
// safe to show.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

func invalid(msg string) error      { return &UserError{Kind: ErrInvalidInput, Message: msg} }
func conflict(msg string) error     { return &UserError{Kind: ErrConflict, Message: msg} }
func unauthorized(msg string) error { return &UserError{Kind: ErrUnauthorized, Message: msg} }
func notFound(msg string) error     { return &UserError{Kind: ErrNotFound, Message: msg} }
