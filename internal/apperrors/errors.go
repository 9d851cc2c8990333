package apperrors

import (
	"errors"
	"net/http"
)

// Kinds of failures the service reports to its callers.
var (
	ErrMissingFields        = errors.New("missing fields")
	ErrEmptyUpdate          = errors.New("empty update")
	ErrNotFound             = errors.New("not found")
	ErrNonPositiveValue     = errors.New("non positive value")
	ErrMissingIdentifier    = errors.New("missing identifier")
	ErrUnexpectedIdentifier = errors.New("unexpected identifier")
	ErrIntegrityViolation   = errors.New("integrity violation")
	ErrBadRequest           = errors.New("bad request")
)

// Error carries a user-facing message together with its kind.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is match an *Error against its kind.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// StatusCode maps an error to the HTTP status it is rendered with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrEmptyUpdate), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrMissingIdentifier), errors.Is(err, ErrNonPositiveValue):
		return http.StatusNotAcceptable
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnexpectedIdentifier):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to show to a client.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return "Internal server error"
}
