// Package apperr defines the error taxonomy shared by repositories, services
// and controllers. Repositories classify backend failures into one of the
// kinds below; controllers map kinds onto HTTP statuses without inspecting
// the underlying cause.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	NotFound Kind = iota + 1
	DuplicateKey
	ValidationError
	Conflict
	QueryError
	WriteError
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case DuplicateKey:
		return "duplicate_key"
	case ValidationError:
		return "validation_error"
	case Conflict:
		return "conflict"
	case QueryError:
		return "query_error"
	case WriteError:
		return "write_error"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an error of the given kind with a caller-facing message.
func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

// Wrap attaches a backend cause. The cause is kept for logging but never
// rendered in HTTP responses for QueryError/WriteError kinds.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// Is reports whether err is an apperr of the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or WriteError when err carries no kind.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return WriteError
}

// HTTPStatus maps a kind to its response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case DuplicateKey, ValidationError:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Public returns the message safe to put in a response body. Unexpected
// backend failures collapse to a generic message; the detail stays in logs.
func Public(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case QueryError, WriteError:
			return "internal server error"
		default:
			return ae.Message
		}
	}
	return "internal server error"
}
