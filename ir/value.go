// Package ir defines the in-memory program representation consumed by the
// profile lowering passes: modules of functions, each a linear stream of
// instructions with value operands and source locations.
package ir

import (
	"fmt"
	"strconv"
)

// Value is an operand in the instruction stream. Instructions that produce a
// result are themselves usable as values, so a dynamic resource handle is
// simply the instruction that allocated it.
type Value interface {
	// String renders the value the way it appears as an operand.
	String() string
}

// Int is a constant integer value.
type Int int64

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// Bool is a constant boolean value.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Double is a constant floating point value, used for rotation angles.
type Double float64

func (d Double) String() string {
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}

// StaticQubit is a reference to a statically addressed qubit slot. This is
// the lowered form of a dynamic qubit allocation.
type StaticQubit struct {
	Address int64
}

func (q StaticQubit) String() string {
	return fmt.Sprintf("qubit[%d]", q.Address)
}

// StaticResult is a reference to a statically addressed measurement result
// slot, the lowered form of a dynamic result handle.
type StaticResult struct {
	Address int64
}

func (r StaticResult) String() string {
	return fmt.Sprintf("result[%d]", r.Address)
}

// FunctionRef names a function as a call target.
type FunctionRef struct {
	Name string
}

func (f FunctionRef) String() string {
	return "@" + f.Name
}

// IsStatic reports whether the value is an already-lowered static resource
// reference. Lowering rule predicates use this to stay idempotent.
func IsStatic(v Value) bool {
	switch v.(type) {
	case StaticQubit, StaticResult:
		return true
	}
	return false
}

// IsConstant reports whether the value is a compile time constant.
func IsConstant(v Value) bool {
	switch v.(type) {
	case Int, Bool, Double:
		return true
	}
	return false
}
