// Package dis provides a human-readable listing of IR functions.
package dis

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/qadapt-io/qadapt/internal/table"
	"github.com/qadapt-io/qadapt/ir"
)

// Instruction is one row of a disassembly listing.
type Instruction struct {
	Offset   int
	Name     string
	Result   string
	Operands []string
	Location string
}

// Disassemble converts a function's instruction stream into listing rows.
func Disassemble(fn *ir.Function) []Instruction {
	rows := make([]Instruction, len(fn.Instructions))
	for i, instr := range fn.Instructions {
		row := Instruction{
			Offset: i,
			Name:   instr.Op.String(),
		}
		if instr.Op.HasResult() {
			row.Result = instr.String()
		}
		for _, operand := range instr.Operands {
			if operand == nil {
				row.Operands = append(row.Operands, "<nil>")
				continue
			}
			row.Operands = append(row.Operands, operand.String())
		}
		if !instr.Location.IsZero() || instr.Location.Filename != "" {
			row.Location = fmt.Sprintf("%s:%d", instr.Location.Filename, instr.Location.Line)
		}
		rows[i] = row
	}
	return rows
}

// Print renders the listing rows as a table. Opcode coloring follows the
// global color.NoColor setting.
func Print(instructions []Instruction, w io.Writer) {
	opcode := color.New(color.FgCyan).SprintFunc()
	result := color.New(color.FgYellow).SprintFunc()

	tbl := table.NewTable(w)
	tbl.WithHeader([]string{"OFFSET", "OPCODE", "RESULT", "OPERANDS", "LOCATION"})
	tbl.WithColumnAlignment([]table.Alignment{
		table.AlignRight, table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignLeft,
	})
	tbl.WithHeaderAlignment([]table.Alignment{
		table.AlignCenter, table.AlignCenter, table.AlignCenter, table.AlignCenter, table.AlignCenter,
	})
	for _, instr := range instructions {
		tbl.Append([]string{
			fmt.Sprintf("%d", instr.Offset),
			opcode(instr.Name),
			result(instr.Result),
			strings.Join(instr.Operands, ", "),
			instr.Location,
		})
	}
	tbl.Render()
}

// Fprint disassembles and prints every function in the module.
func Fprint(w io.Writer, mod *ir.Module) {
	for i, fn := range mod.Functions {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "function %s:\n", fn.Name)
		Print(Disassemble(fn), w)
	}
}
