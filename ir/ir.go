package ir

import (
	"fmt"
	"strings"

	"github.com/qadapt-io/qadapt/errz"
	"github.com/qadapt-io/qadapt/op"
)

// Instruction is a single operation in a function's instruction stream. An
// instruction whose opcode produces a result is itself a Value; operand
// lists reference it by pointer identity.
type Instruction struct {
	Op       op.Code
	Operands []Value
	Location errz.SourceLocation

	// Name identifies the produced value in listings, e.g. "%2". Assigned
	// by Function.Emit for result-producing opcodes.
	Name string
}

// NewInstruction creates a detached instruction.
func NewInstruction(code op.Code, operands ...Value) *Instruction {
	return &Instruction{Op: code, Operands: operands}
}

// String renders the instruction as an operand reference.
func (i *Instruction) String() string {
	if i.Name != "" {
		return "%" + i.Name
	}
	return "%" + strings.ToLower(i.Op.String())
}

// Render returns the full textual form of the instruction.
func (i *Instruction) Render() string {
	var b strings.Builder
	if i.Op.HasResult() {
		b.WriteString(i.String())
		b.WriteString(" = ")
	}
	b.WriteString(i.Op.String())
	for idx, operand := range i.Operands {
		if idx == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		if operand == nil {
			b.WriteString("<nil>")
		} else {
			b.WriteString(operand.String())
		}
	}
	return b.String()
}

// Function is a named linear instruction stream. Loop regions are expressed
// inline with Loop/EndLoop markers rather than a block graph.
type Function struct {
	Name         string
	Instructions []*Instruction

	nextValue int
}

// NewFunction creates an empty function.
func NewFunction(name string) *Function {
	return &Function{Name: name}
}

// Emit appends a new instruction and returns it. Result-producing opcodes
// are assigned the next value name in the function.
func (f *Function) Emit(code op.Code, operands ...Value) *Instruction {
	return f.EmitAt(errz.SourceLocation{}, code, operands...)
}

// EmitAt is Emit with an explicit source location.
func (f *Function) EmitAt(loc errz.SourceLocation, code op.Code, operands ...Value) *Instruction {
	instr := &Instruction{Op: code, Operands: operands, Location: loc}
	if code.HasResult() {
		instr.Name = fmt.Sprintf("%d", f.nextValue)
		f.nextValue++
	}
	f.Instructions = append(f.Instructions, instr)
	return instr
}

// InstructionCount returns the number of instructions in the function.
func (f *Function) InstructionCount() int {
	return len(f.Instructions)
}

// Instruction returns the instruction at the given index.
func (f *Function) Instruction(index int) *Instruction {
	return f.Instructions[index]
}

// InsertAt splices instructions into the stream before the given index.
func (f *Function) InsertAt(index int, instrs ...*Instruction) {
	rest := make([]*Instruction, len(f.Instructions[index:]))
	copy(rest, f.Instructions[index:])
	f.Instructions = append(f.Instructions[:index], append(instrs, rest...)...)
}

// DeleteAt removes the instruction at the given index.
func (f *Function) DeleteAt(index int) {
	f.Instructions = append(f.Instructions[:index], f.Instructions[index+1:]...)
}

// ReplaceAt substitutes the instruction at the given index with zero or more
// replacement instructions, returning the number of instructions spliced in.
func (f *Function) ReplaceAt(index int, instrs ...*Instruction) int {
	rest := make([]*Instruction, len(f.Instructions[index+1:]))
	copy(rest, f.Instructions[index+1:])
	f.Instructions = append(f.Instructions[:index], append(instrs, rest...)...)
	return len(instrs)
}

// SubstituteValue replaces every operand use of old with new throughout the
// function. Used when lowering replaces a dynamic handle with a static
// resource reference.
func (f *Function) SubstituteValue(old, new Value) int {
	var n int
	for _, instr := range f.Instructions {
		for i, operand := range instr.Operands {
			if operand == old {
				instr.Operands[i] = new
				n++
			}
		}
	}
	return n
}

// Validate checks stream well-formedness: operand counts matching the
// opcode table, no nil operands, and balanced loop regions. A violation is
// an internal error; rules must never produce a malformed stream.
func (f *Function) Validate() error {
	depth := 0
	for idx, instr := range f.Instructions {
		info := op.GetInfo(instr.Op)
		if info.Name == "" {
			return errz.InternalErrorf("function %q: invalid opcode at index %d", f.Name, idx)
		}
		if len(instr.Operands) != info.OperandCount {
			return errz.InternalErrorf(
				"function %q: %s at index %d has %d operands, want %d",
				f.Name, info.Name, idx, len(instr.Operands), info.OperandCount)
		}
		for i, operand := range instr.Operands {
			if operand == nil {
				return errz.InternalErrorf(
					"function %q: %s at index %d has nil operand %d",
					f.Name, info.Name, idx, i)
			}
		}
		switch instr.Op {
		case op.Loop:
			depth++
		case op.EndLoop:
			depth--
			if depth < 0 {
				return errz.InternalErrorf(
					"function %q: unmatched END_LOOP at index %d", f.Name, idx)
			}
		}
	}
	if depth != 0 {
		return errz.InternalErrorf("function %q: %d unterminated loop region(s)", f.Name, depth)
	}
	return nil
}
