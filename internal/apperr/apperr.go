// Package apperr defines the single tagged error type used across the
// service. Every layer classifies failures with a Kind; handlers map the
// Kind to an HTTP status in one place.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// Kind classifies an error for HTTP mapping and logging.
type Kind int

const (
	Internal Kind = iota
	InvalidArgument
	Unauthenticated
	NotFound
	Conflict
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid_argument"
	case Unauthenticated:
		return "unauthenticated"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error carries a kind, a caller-facing message, and an optional cause.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Message returns the caller-facing message without the wrapped cause.
// Internal errors never leak their cause to clients.
func (e *Error) Message() string { return e.msg }

// New creates an error with the given kind and message.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Newf creates an error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

// KindOf returns the kind of err, or Internal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error to its HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidArgument:
		return fiber.StatusBadRequest
	case Unauthenticated:
		return fiber.StatusUnauthorized
	case NotFound:
		return fiber.StatusNotFound
	case Conflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to send to clients. Unclassified
// and Internal errors collapse to a generic message.
func ClientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.kind != Internal {
		return e.msg
	}
	return "An error occurred."
}
