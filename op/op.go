// Package op defines the operation codes used by the qadapt intermediate
// representation and the profile lowering passes.
package op

// Code is an integer opcode that identifies an IR operation.
type Code uint16

const (
	Invalid Code = 0

	// Execution
	Nop  Code = 1
	Ret  Code = 2
	Call Code = 3

	// Resource management
	QubitAlloc     Code = 10 // Dynamically allocate a qubit; the instruction is the handle
	QubitRelease   Code = 11 // Release a qubit handle
	Measure        Code = 12 // Measure a qubit; the instruction is the result handle
	ReadResult     Code = 13 // Read a measurement result as a boolean
	RecordOutput   Code = 14 // Record a result in the output stream
	RefCountUpdate Code = 15 // Adjust the reference count of a handle

	// Lowered resource forms
	MeasureOut Code = 20 // Measure a qubit into a static result slot

	// Single-qubit gates
	H  Code = 30
	X  Code = 31
	Y  Code = 32
	Z  Code = 33
	S  Code = 34
	T  Code = 35
	Rx Code = 36 // Rotation: angle operand then target
	Ry Code = 37
	Rz Code = 38

	// Two-qubit gates
	CNOT Code = 50 // Control then target
	CZ   Code = 51

	// Comparison
	CmpResult Code = 60 // Compare a result value against a constant

	// Structured control flow
	Loop    Code = 70 // Begin a loop region; operand is the trip count
	EndLoop Code = 71 // Close the innermost loop region
)

// Info contains information about an opcode.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
	HasResult    bool // The instruction produces a value usable as an operand
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op        Code
		name      string
		count     int
		hasResult bool
	}
	ops := []opInfo{
		{Nop, "NOP", 0, false},
		{Ret, "RET", 0, false},
		{Call, "CALL", 1, false},
		{QubitAlloc, "QUBIT_ALLOC", 0, true},
		{QubitRelease, "QUBIT_RELEASE", 1, false},
		{Measure, "MEASURE", 1, true},
		{ReadResult, "READ_RESULT", 1, true},
		{RecordOutput, "RECORD_OUTPUT", 1, false},
		{RefCountUpdate, "REFCOUNT_UPDATE", 2, false},
		{MeasureOut, "MEASURE_OUT", 2, false},
		{H, "H", 1, false},
		{X, "X", 1, false},
		{Y, "Y", 1, false},
		{Z, "Z", 1, false},
		{S, "S", 1, false},
		{T, "T", 1, false},
		{Rx, "RX", 2, false},
		{Ry, "RY", 2, false},
		{Rz, "RZ", 2, false},
		{CNOT, "CNOT", 2, false},
		{CZ, "CZ", 2, false},
		{CmpResult, "CMP_RESULT", 2, true},
		{Loop, "LOOP", 1, false},
		{EndLoop, "END_LOOP", 0, false},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:         o.op,
			Name:         o.name,
			OperandCount: o.count,
			HasResult:    o.hasResult,
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(c Code) Info {
	if int(c) >= len(infos) {
		return Info{}
	}
	return infos[c]
}

// IsGate returns true if the opcode is a quantum gate operation.
func (c Code) IsGate() bool {
	return (c >= H && c <= Rz) || c == CNOT || c == CZ
}

// HasResult returns true if instructions with this opcode produce a value.
func (c Code) HasResult() bool {
	return GetInfo(c).HasResult
}

// String returns the opcode's mnemonic name.
func (c Code) String() string {
	info := GetInfo(c)
	if info.Name == "" {
		return "INVALID"
	}
	return info.Name
}
