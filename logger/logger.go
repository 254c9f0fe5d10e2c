// Package logger defines the logging capability used by the lowering passes.
//
// The interface is passed explicitly into the transformation pass and the
// rule factory rather than reached through a global, so each call site
// controls where its diagnostics are attributed. The current source location
// is set independently of message emission: a caller updates the location
// once when its cursor moves and all subsequent messages carry it.
package logger

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/qadapt-io/qadapt/errz"
)

// Logger collects messages emitted during lowering and validation.
type Logger interface {
	// Debug reports a debug message.
	Debug(message string)

	// Info reports an info message.
	Info(message string)

	// Warning reports a warning message.
	Warning(message string)

	// Error reports an error message.
	Error(message string)

	// InternalError reports an engine invariant violation. These are kept
	// distinct from Error so tooling can tell a program that cannot target
	// the profile apart from a misbehaving compiler.
	InternalError(message string)

	// SetLocation sets the current source position. The location applies to
	// every message reported until the next SetLocation call.
	SetLocation(name string, row, col int)
}

// ZerologLogger is a Logger that writes structured records through zerolog.
type ZerologLogger struct {
	log      zerolog.Logger
	location errz.SourceLocation
}

// NewZerolog creates a Logger writing to the given destination.
func NewZerolog(w io.Writer) *ZerologLogger {
	return &ZerologLogger{log: zerolog.New(w).With().Timestamp().Logger()}
}

// NewZerologWith wraps an existing zerolog.Logger.
func NewZerologWith(log zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{log: log}
}

func (z *ZerologLogger) emit(ev *zerolog.Event, message string) {
	if !z.location.IsZero() || z.location.Filename != "" {
		ev = ev.Str("file", z.location.Filename).
			Int("line", z.location.Line).
			Int("column", z.location.Column)
	}
	ev.Msg(message)
}

func (z *ZerologLogger) Debug(message string) {
	z.emit(z.log.Debug(), message)
}

func (z *ZerologLogger) Info(message string) {
	z.emit(z.log.Info(), message)
}

func (z *ZerologLogger) Warning(message string) {
	z.emit(z.log.Warn(), message)
}

func (z *ZerologLogger) Error(message string) {
	z.emit(z.log.Error(), message)
}

func (z *ZerologLogger) InternalError(message string) {
	z.emit(z.log.Error().Bool("internal", true), message)
}

func (z *ZerologLogger) SetLocation(name string, row, col int) {
	z.location = errz.SourceLocation{Filename: name, Line: row, Column: col}
}

// Location returns the current source position.
func (z *ZerologLogger) Location() errz.SourceLocation {
	return z.location
}

// Nop is a Logger that discards all messages.
type Nop struct{}

func (Nop) Debug(string)                 {}
func (Nop) Info(string)                  {}
func (Nop) Warning(string)               {}
func (Nop) Error(string)                 {}
func (Nop) InternalError(string)         {}
func (Nop) SetLocation(string, int, int) {}
