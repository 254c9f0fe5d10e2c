package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCaptureRecordsMessages(t *testing.T) {
	c := NewCapture()
	c.Info("starting")
	c.SetLocation("bell.ll", 4, 7)
	c.Warning("suspicious gate")
	c.Error("cannot lower")

	require.Len(t, c.Messages, 3)
	require.Equal(t, "[info] starting", c.Messages[0].String())
	require.Equal(t, "[warning] suspicious gate (bell.ll:4:7)", c.Messages[1].String())
	require.Equal(t, "[error] cannot lower (bell.ll:4:7)", c.Messages[2].String())
	require.Equal(t, 1, c.ErrorCount())
}

func TestCaptureLocationAppliesToSubsequentMessages(t *testing.T) {
	c := NewCapture()
	c.SetLocation("a.ll", 1, 1)
	c.Debug("one")
	c.SetLocation("a.ll", 2, 5)
	c.Debug("two")
	c.Debug("three")

	require.Equal(t, 1, c.Messages[0].Location.Line)
	require.Equal(t, 2, c.Messages[1].Location.Line)
	require.Equal(t, 2, c.Messages[2].Location.Line)
}

func TestCaptureInternalError(t *testing.T) {
	c := NewCapture()
	c.InternalError("rule produced malformed stream")
	msg, ok := c.Last()
	require.True(t, ok)
	require.Equal(t, SeverityInternalError, msg.Severity)
	require.Equal(t, 1, c.ErrorCount())
}

func TestCaptureLastEmpty(t *testing.T) {
	c := NewCapture()
	_, ok := c.Last()
	require.False(t, ok)
}

func TestZerologLoggerEmitsLocation(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerolog(&buf)
	z.SetLocation("bell.ll", 3, 9)
	z.Error("qubit limit exceeded")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "bell.ll", record["file"])
	require.Equal(t, float64(3), record["line"])
	require.Equal(t, float64(9), record["column"])
	require.Equal(t, "qubit limit exceeded", record["message"])
}

func TestZerologInternalErrorFlag(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerolog(&buf)
	z.InternalError("kaboom")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, true, record["internal"])
}

func TestNopLoggerSatisfiesInterface(t *testing.T) {
	var l Logger = Nop{}
	l.SetLocation("x", 1, 1)
	l.Debug("ignored")
	l.InternalError("ignored")
}
