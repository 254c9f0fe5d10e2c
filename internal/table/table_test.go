package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf)
	table.WithHeader([]string{"HEADER1", "H2", "h3"})
	table.WithColumnAlignment([]Alignment{AlignLeft, AlignRight, AlignLeft})
	table.WithHeaderAlignment([]Alignment{AlignCenter, AlignCenter, AlignRight})
	table.Append([]string{"ROW1", "ROW2", "foo bar"})
	table.Append([]string{"a", "b", "c"})
	table.Render()

	expected := `
+---------+------+---------+
| HEADER1 |  H2  |      h3 |
+---------+------+---------+
| ROW1    | ROW2 | foo bar |
| a       |    b | c       |
+---------+------+---------+
`
	require.Equal(t, strings.TrimSpace(expected)+"\n", buf.String())
}

func TestTableWithoutHeader(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf)
	table.Append([]string{"x", "yy"})
	table.Append([]string{"zzz", "w"})
	table.Render()

	expected := `
+-----+----+
| x   | yy |
| zzz | w  |
+-----+----+
`
	require.Equal(t, strings.TrimSpace(expected)+"\n", buf.String())
}

func TestTableShortRowPadded(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf)
	table.WithHeader([]string{"A", "B"})
	table.Append([]string{"only"})
	table.Render()

	expected := `
+------+---+
| A    | B |
+------+---+
| only |   |
+------+---+
`
	require.Equal(t, strings.TrimSpace(expected)+"\n", buf.String())
}

func TestColoredTable(t *testing.T) {
	green := color.New(color.FgGreen)
	green.EnableColor()
	bold := color.New(color.Bold)
	bold.EnableColor()

	var buf bytes.Buffer
	table := NewTable(&buf)
	table.WithHeader([]string{"HEADER1", "HEADER2", "HEADER3"})
	table.WithColumnAlignment([]Alignment{AlignLeft, AlignRight, AlignLeft})
	table.Append([]string{bold.Sprint("Bold text"), "12345", green.Sprint("Green text")})
	table.Append([]string{"Normal", bold.Sprint("999"), green.Sprint("More color")})
	table.Render()

	// Color codes must not break alignment: every line has the same width
	// once ANSI escapes are stripped.
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	want := len(lines[0])
	for i, line := range lines {
		require.Len(t, stripAnsi(line), want, "line %d", i)
	}
}
