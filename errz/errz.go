// Package errz defines the error types used during profile lowering, with
// source locations attached for actionable diagnostics.
package errz

import (
	"bytes"
	"fmt"
	"strings"
)

// Kind represents the category of an error.
type Kind int

const (
	// ErrConfiguration indicates a malformed or contradictory configuration,
	// detected before any instruction is visited.
	ErrConfiguration Kind = iota
	// ErrResourceExhausted indicates an allocation exceeded a profile-imposed
	// static resource bound.
	ErrResourceExhausted
	// ErrUnsupportedLowering indicates an instruction that cannot be safely
	// rewritten into a statically-addressed form.
	ErrUnsupportedLowering
	// ErrInternal indicates an invariant violation inside the engine itself,
	// as opposed to a problem with the program being lowered.
	ErrInternal
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case ErrConfiguration:
		return "configuration error"
	case ErrResourceExhausted:
		return "resource exhausted"
	case ErrUnsupportedLowering:
		return "unsupported lowering"
	case ErrInternal:
		return "internal error"
	default:
		return "error"
	}
}

// SourceLocation represents a position in the program's originating source.
type SourceLocation struct {
	Filename string
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Source   string // The line of source code, if available
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// Error is a structured error with a kind and a source location.
type Error struct {
	Kind     Kind
	Message  string
	Location SourceLocation
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Location.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind.String(), e.Message, e.Location.String())
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsFatal returns whether the error aborts the compilation unit. All lowering
// errors are fatal; nothing partially rewritten is ever emitted.
func (e *Error) IsFatal() bool {
	return true
}

// IsInternal returns true for engine invariant violations, so tooling can
// distinguish "your program can't target this profile" from "the compiler
// itself misbehaved".
func (e *Error) IsInternal() bool {
	return e.Kind == ErrInternal
}

// WithCause wraps the error with a cause.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// FriendlyErrorMessage returns a human-friendly error message with a source
// snippet and caret when location information is available.
func (e *Error) FriendlyErrorMessage() string {
	var msg bytes.Buffer
	if e.Location.IsZero() {
		fmt.Fprintf(&msg, "%s: %s\n", e.Kind.String(), e.Message)
	} else {
		fmt.Fprintf(&msg, "%s: %s (%s)\n", e.Kind.String(), e.Message, e.Location.String())
	}
	if e.Location.Source != "" {
		msg.WriteString(" | ")
		msg.WriteString(e.Location.Source)
		msg.WriteString("\n")
		if e.Location.Column > 0 {
			msg.WriteString(" | ")
			msg.WriteString(strings.Repeat(" ", e.Location.Column-1))
			msg.WriteString("^\n")
		}
	}
	return msg.String()
}

// New creates a new Error with the given kind and message.
func New(kind Kind, loc SourceLocation, message string) *Error {
	return &Error{Kind: kind, Message: message, Location: loc}
}

// Newf creates a new Error with a formatted message.
func Newf(kind Kind, loc SourceLocation, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Location: loc}
}

// ConfigErrorf creates a configuration error with no location. Configuration
// problems are detected before any instruction is visited, so there is no
// program position to attribute them to.
func ConfigErrorf(format string, args ...any) *Error {
	return Newf(ErrConfiguration, SourceLocation{}, format, args...)
}

// InternalErrorf creates an internal error with no location.
func InternalErrorf(format string, args ...any) *Error {
	return Newf(ErrInternal, SourceLocation{}, format, args...)
}

// FriendlyError is an interface for errors that have a human friendly message
// in addition to the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}
