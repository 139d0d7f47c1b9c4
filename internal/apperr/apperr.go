// Package apperr defines the error taxonomy shared by the core
// services. Every failure surfaced to a caller carries a
// machine-readable kind and a human-readable message; the HTTP layer
// maps kinds to status codes at the boundary.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	// Validation marks malformed or missing input, fixable by the caller.
	Validation Kind = "validation"
	// Forbidden marks a role or ownership mismatch.
	Forbidden Kind = "forbidden"
	// NotFound marks a referenced entity that does not exist.
	NotFound Kind = "not_found"
	// Conflict marks a state-machine transition on a terminal or
	// contended entity.
	Conflict Kind = "conflict"
	// Routing marks a failed report+assignment transaction or an empty
	// fan-out; the report itself has been rolled back.
	Routing Kind = "routing"
	// Internal marks everything else.
	Internal Kind = "internal"
)

// Error is the structured error returned by core operations.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to an Error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or Internal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
