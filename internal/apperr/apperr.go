// Package apperr defines the error kinds the HTTP layer maps to status codes.
package apperr

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Error is a message tagged with one of the kinds above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// New returns an error that matches kind with errors.Is.
func New(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}
