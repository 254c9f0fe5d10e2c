// Package table renders simple ASCII tables for CLI listings.
package table

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Alignment controls how cell contents are padded within a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Table accumulates rows and renders them with box-drawing borders.
// Column widths are computed from the widest cell, ignoring ANSI color
// codes so colored content does not break alignment.
type Table struct {
	w          io.Writer
	header     []string
	rows       [][]string
	align      []Alignment
	headAlign  []Alignment
	numColumns int
}

// NewTable creates an empty table writing to w.
func NewTable(w io.Writer) *Table {
	return &Table{w: w}
}

// WithHeader sets the header row.
func (t *Table) WithHeader(header []string) *Table {
	t.header = header
	if len(header) > t.numColumns {
		t.numColumns = len(header)
	}
	return t
}

// WithColumnAlignment sets the per-column alignment of body rows.
func (t *Table) WithColumnAlignment(align []Alignment) *Table {
	t.align = align
	return t
}

// WithHeaderAlignment sets the per-column alignment of the header row.
func (t *Table) WithHeaderAlignment(align []Alignment) *Table {
	t.headAlign = align
	return t
}

// Append adds a body row.
func (t *Table) Append(row []string) *Table {
	t.rows = append(t.rows, row)
	if len(row) > t.numColumns {
		t.numColumns = len(row)
	}
	return t
}

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func displayWidth(s string) int {
	return len([]rune(stripAnsi(s)))
}

// Render writes the table. Layout: a border, the header (if set), a
// border, the body rows, and a closing border.
func (t *Table) Render() {
	widths := make([]int, t.numColumns)
	measure := func(row []string) {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.header)
	for _, row := range t.rows {
		measure(row)
	}

	t.writeBorder(widths)
	if len(t.header) > 0 {
		t.writeRow(t.header, widths, t.headAlign)
		t.writeBorder(widths)
	}
	for _, row := range t.rows {
		t.writeRow(row, widths, t.align)
	}
	t.writeBorder(widths)
}

func (t *Table) writeBorder(widths []int) {
	var b strings.Builder
	b.WriteString("+")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("+")
	}
	fmt.Fprintln(t.w, b.String())
}

func (t *Table) writeRow(row []string, widths []int, align []Alignment) {
	var b strings.Builder
	b.WriteString("|")
	for i, w := range widths {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		a := AlignLeft
		if i < len(align) {
			a = align[i]
		}
		b.WriteString(" ")
		b.WriteString(pad(cell, w, a))
		b.WriteString(" |")
	}
	fmt.Fprintln(t.w, b.String())
}

// pad fills the cell to the target width. Padding is computed against the
// display width so embedded color codes keep columns aligned.
func pad(cell string, width int, a Alignment) string {
	gap := width - displayWidth(cell)
	if gap <= 0 {
		return cell
	}
	switch a {
	case AlignRight:
		return strings.Repeat(" ", gap) + cell
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}
