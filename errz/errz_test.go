package errz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	require.Equal(t, "configuration error", ErrConfiguration.String())
	require.Equal(t, "resource exhausted", ErrResourceExhausted.String())
	require.Equal(t, "unsupported lowering", ErrUnsupportedLowering.String())
	require.Equal(t, "internal error", ErrInternal.String())
	require.Equal(t, "error", Kind(42).String())
}

func TestErrorWithoutLocation(t *testing.T) {
	err := ConfigErrorf("unknown option %q", "bogus")
	require.Equal(t, `configuration error: unknown option "bogus"`, err.Error())
	require.True(t, err.IsFatal())
	require.False(t, err.IsInternal())
}

func TestErrorWithLocation(t *testing.T) {
	loc := SourceLocation{Filename: "bell.ll", Line: 12, Column: 3}
	err := Newf(ErrUnsupportedLowering, loc, "qubit allocation inside dynamic loop")
	require.Equal(t,
		"unsupported lowering: qubit allocation inside dynamic loop (bell.ll:12:3)",
		err.Error())
}

func TestSourceLocationString(t *testing.T) {
	require.Equal(t, "f.ll:1:2", SourceLocation{Filename: "f.ll", Line: 1, Column: 2}.String())
	require.Equal(t, "3:4", SourceLocation{Line: 3, Column: 4}.String())
	require.True(t, SourceLocation{}.IsZero())
	require.False(t, SourceLocation{Line: 1}.IsZero())
}

func TestFriendlyErrorMessage(t *testing.T) {
	loc := SourceLocation{
		Filename: "t.ll",
		Line:     1,
		Column:   5,
		Source:   "q = alloc()",
	}
	err := New(ErrResourceExhausted, loc, "qubit limit of 2 exceeded")
	msg := err.FriendlyErrorMessage()
	require.Contains(t, msg, "resource exhausted: qubit limit of 2 exceeded (t.ll:1:5)")
	require.Contains(t, msg, " | q = alloc()")
	require.Contains(t, msg, " |     ^")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("kaboom")
	err := InternalErrorf("rule produced malformed stream").WithCause(cause)
	require.True(t, err.IsInternal())
	require.ErrorIs(t, err, cause)
}
