// Package interop builds IR modules from a semantic circuit model, a
// JSON-friendly description of qubit registers, classical registers and a
// gate stream.
package interop

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/qadapt-io/qadapt/errz"
	"github.com/qadapt-io/qadapt/ir"
	"github.com/qadapt-io/qadapt/op"
)

// QubitRegister declares one qubit. Gates address it by its indexed name,
// the register name immediately followed by the index ("qr0").
type QubitRegister struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// IndexedName returns the name gates use to address this qubit.
func (r QubitRegister) IndexedName() string {
	return fmt.Sprintf("%s%d", r.Name, r.Index)
}

// ClassicalRegister declares a block of measurement result slots.
// Measurements address individual slots by name and position ("qc1").
type ClassicalRegister struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Gate is one instruction of the circuit. Which fields apply depends on
// the gate name: rotations carry Rotation, controlled gates carry
// Controls, measurements carry Result.
type Gate struct {
	Name     string   `json:"name"`
	Targets  []string `json:"targets"`
	Controls []string `json:"controls,omitempty"`
	Rotation float64  `json:"rotation,omitempty"`
	Result   string   `json:"result,omitempty"`
}

// SemanticModel is the circuit description accepted on the tool boundary.
type SemanticModel struct {
	Name         string              `json:"name"`
	Qubits       []QubitRegister     `json:"qubits"`
	Registers    []ClassicalRegister `json:"registers"`
	Instructions []Gate              `json:"instructions"`
}

// Decode reads a SemanticModel from JSON. Unknown fields are rejected so
// that a misspelled field fails loudly instead of silently dropping a
// gate attribute.
func Decode(r io.Reader) (*SemanticModel, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var model SemanticModel
	if err := dec.Decode(&model); err != nil {
		return nil, errz.ConfigErrorf("invalid semantic model: %v", err)
	}
	return &model, nil
}

// BuildModule lowers the model into a dynamic IR module: one qubit
// allocation per declared qubit, the gate stream, a release per qubit and
// a final return. Measurements become a dynamic measure followed by an
// output record. The module carries synthesized source locations pointing
// back at the model's instruction positions.
func (m *SemanticModel) BuildModule() (*ir.Module, error) {
	mod := ir.NewModule(m.Name)
	fn := mod.AddFunction(ir.Entrypoint)
	b := &builder{
		fn:       fn,
		filename: m.Name + ".json",
		qubits:   make(map[string]*ir.Instruction, len(m.Qubits)),
		results:  make(map[string]bool),
	}

	for _, reg := range m.Qubits {
		name := reg.IndexedName()
		if _, dup := b.qubits[name]; dup {
			return nil, errz.ConfigErrorf("duplicate qubit %q", name)
		}
		b.line++
		handle := fn.EmitAt(b.location(), op.QubitAlloc)
		handle.Name = name
		b.qubits[name] = handle
	}
	for _, reg := range m.Registers {
		for i := int64(0); i < reg.Size; i++ {
			b.results[fmt.Sprintf("%s%d", reg.Name, i)] = true
		}
	}

	for _, gate := range m.Instructions {
		b.line++
		if err := b.emit(gate); err != nil {
			return nil, err
		}
	}

	for _, reg := range m.Qubits {
		b.line++
		fn.EmitAt(b.location(), op.QubitRelease, b.qubits[reg.IndexedName()])
	}
	b.line++
	fn.EmitAt(b.location(), op.Ret)
	return mod, nil
}

type builder struct {
	fn       *ir.Function
	filename string
	line     int
	qubits   map[string]*ir.Instruction
	results  map[string]bool
}

func (b *builder) location() errz.SourceLocation {
	return errz.SourceLocation{Filename: b.filename, Line: b.line, Column: 1}
}

// singleQubitGates maps gate names to opcodes for plain one-target gates.
var singleQubitGates = map[string]op.Code{
	"h": op.H,
	"x": op.X,
	"y": op.Y,
	"z": op.Z,
	"s": op.S,
	"t": op.T,
}

var rotationGates = map[string]op.Code{
	"rx": op.Rx,
	"ry": op.Ry,
	"rz": op.Rz,
}

var controlledGates = map[string]op.Code{
	"cx":   op.CNOT,
	"cnot": op.CNOT,
	"cz":   op.CZ,
}

func (b *builder) emit(gate Gate) error {
	name := strings.ToLower(gate.Name)
	switch {
	case singleQubitGates[name] != op.Invalid:
		target, err := b.qubit(gate, 0)
		if err != nil {
			return err
		}
		b.fn.EmitAt(b.location(), singleQubitGates[name], target)
		return nil

	case rotationGates[name] != op.Invalid:
		target, err := b.qubit(gate, 0)
		if err != nil {
			return err
		}
		b.fn.EmitAt(b.location(), rotationGates[name], ir.Double(gate.Rotation), target)
		return nil

	case controlledGates[name] != op.Invalid:
		if len(gate.Controls) != 1 {
			return errz.New(errz.ErrConfiguration, b.location(),
				fmt.Sprintf("gate %q requires exactly one control qubit", gate.Name))
		}
		control, ok := b.qubits[gate.Controls[0]]
		if !ok {
			return b.unknownQubit(gate.Controls[0])
		}
		target, err := b.qubit(gate, 0)
		if err != nil {
			return err
		}
		b.fn.EmitAt(b.location(), controlledGates[name], control, target)
		return nil

	case name == "m" || name == "mz" || name == "measure":
		target, err := b.qubit(gate, 0)
		if err != nil {
			return err
		}
		if gate.Result == "" {
			return errz.New(errz.ErrConfiguration, b.location(),
				fmt.Sprintf("measurement of %q names no result slot", gate.Targets[0]))
		}
		if !b.results[gate.Result] {
			return errz.New(errz.ErrConfiguration, b.location(),
				fmt.Sprintf("unknown result slot %q", gate.Result))
		}
		measured := b.fn.EmitAt(b.location(), op.Measure, target)
		measured.Name = gate.Result
		b.fn.EmitAt(b.location(), op.RecordOutput, measured)
		return nil

	default:
		return errz.New(errz.ErrConfiguration, b.location(),
			fmt.Sprintf("unknown gate %q", gate.Name))
	}
}

func (b *builder) qubit(gate Gate, i int) (ir.Value, error) {
	if len(gate.Targets) <= i {
		return nil, errz.New(errz.ErrConfiguration, b.location(),
			fmt.Sprintf("gate %q is missing a target qubit", gate.Name))
	}
	handle, ok := b.qubits[gate.Targets[i]]
	if !ok {
		return nil, b.unknownQubit(gate.Targets[i])
	}
	return handle, nil
}

func (b *builder) unknownQubit(name string) error {
	return errz.New(errz.ErrConfiguration, b.location(),
		fmt.Sprintf("unknown qubit %q", name))
}
