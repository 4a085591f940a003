package domain

import "errors"

// Error kinds. Every error returned to the HTTP layer either wraps one of
// these or is treated as an internal store failure.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

// Error pairs an error kind with the message shown to clients.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func Validation(msg string) error { return &Error{Kind: ErrValidation, Msg: msg} }

func Conflict(msg string) error { return &Error{Kind: ErrConflict, Msg: msg} }

func Unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Msg: msg} }

func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Msg: msg} }

// Message returns the client-facing message carried by err, if any.
func Message(err error) (string, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Msg, true
	}
	return "", false
}
