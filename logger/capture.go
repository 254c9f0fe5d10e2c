package logger

import (
	"fmt"

	"github.com/qadapt-io/qadapt/errz"
)

// Severity classifies a captured message.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityInternalError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityInternalError:
		return "internal error"
	default:
		return "unknown"
	}
}

// Message is a single captured log record.
type Message struct {
	Severity Severity
	Text     string
	Location errz.SourceLocation
}

// String formats the record for inspection in tests.
func (m Message) String() string {
	if m.Location.IsZero() && m.Location.Filename == "" {
		return fmt.Sprintf("[%s] %s", m.Severity, m.Text)
	}
	return fmt.Sprintf("[%s] %s (%s)", m.Severity, m.Text, m.Location)
}

// Capture is a Logger that records messages in memory. It backs tests and
// the validation tooling that inspects diagnostics after a run.
type Capture struct {
	Messages []Message
	location errz.SourceLocation
}

// NewCapture creates an empty capturing logger.
func NewCapture() *Capture {
	return &Capture{}
}

func (c *Capture) record(sev Severity, message string) {
	c.Messages = append(c.Messages, Message{
		Severity: sev,
		Text:     message,
		Location: c.location,
	})
}

func (c *Capture) Debug(message string)         { c.record(SeverityDebug, message) }
func (c *Capture) Info(message string)          { c.record(SeverityInfo, message) }
func (c *Capture) Warning(message string)       { c.record(SeverityWarning, message) }
func (c *Capture) Error(message string)         { c.record(SeverityError, message) }
func (c *Capture) InternalError(message string) { c.record(SeverityInternalError, message) }

func (c *Capture) SetLocation(name string, row, col int) {
	c.location = errz.SourceLocation{Filename: name, Line: row, Column: col}
}

// ErrorCount returns the number of error and internal error messages.
func (c *Capture) ErrorCount() int {
	var n int
	for _, m := range c.Messages {
		if m.Severity >= SeverityError {
			n++
		}
	}
	return n
}

// Last returns the most recent message, if any.
func (c *Capture) Last() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}
