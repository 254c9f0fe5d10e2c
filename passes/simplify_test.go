package passes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qadapt-io/qadapt/ir"
	"github.com/qadapt-io/qadapt/logger"
	"github.com/qadapt-io/qadapt/op"
)

func TestSimplifyFoldsConstantComparisons(t *testing.T) {
	mod := ir.NewModule("m")
	fn := mod.AddFunction("main")
	cmp := fn.Emit(op.CmpResult, ir.Int(1), ir.Int(1))
	fn.Emit(op.RecordOutput, cmp)
	fn.Emit(op.Ret)

	require.NoError(t, NewSimplify(nil).Run(mod))
	require.Equal(t, []string{
		"RECORD_OUTPUT true",
		"RET",
	}, renderFunction(fn))
}

func TestSimplifyFoldsUnequalConstants(t *testing.T) {
	mod := ir.NewModule("m")
	fn := mod.AddFunction("main")
	cmp := fn.Emit(op.CmpResult, ir.Int(0), ir.Int(1))
	fn.Emit(op.RecordOutput, cmp)

	require.NoError(t, NewSimplify(nil).Run(mod))
	require.Equal(t, []string{"RECORD_OUTPUT false"}, renderFunction(fn))
}

func TestSimplifyLeavesRuntimeComparisons(t *testing.T) {
	mod := ir.NewModule("m")
	fn := mod.AddFunction("main")
	read := fn.Emit(op.ReadResult, ir.StaticResult{Address: 0})
	fn.Emit(op.CmpResult, read, ir.Int(1))

	require.NoError(t, NewSimplify(nil).Run(mod))
	require.Equal(t, 2, fn.InstructionCount())
}

func TestSimplifyUnrollsConstantLoop(t *testing.T) {
	mod := ir.NewModule("m")
	fn := mod.AddFunction("main")
	fn.Emit(op.Loop, ir.Int(3))
	fn.Emit(op.X, ir.StaticQubit{Address: 0})
	fn.Emit(op.EndLoop)
	fn.Emit(op.Ret)

	require.NoError(t, NewSimplify(nil).Run(mod))
	require.Equal(t, []string{
		"X qubit[0]",
		"X qubit[0]",
		"X qubit[0]",
		"RET",
	}, renderFunction(fn))
}

func TestSimplifyUnrollsNestedLoops(t *testing.T) {
	mod := ir.NewModule("m")
	fn := mod.AddFunction("main")
	fn.Emit(op.Loop, ir.Int(2))
	fn.Emit(op.Loop, ir.Int(2))
	fn.Emit(op.X, ir.StaticQubit{Address: 0})
	fn.Emit(op.EndLoop)
	fn.Emit(op.EndLoop)

	require.NoError(t, NewSimplify(nil).Run(mod))
	require.Equal(t, 4, fn.InstructionCount())
	for _, instr := range fn.Instructions {
		require.Equal(t, op.X, instr.Op)
	}
}

func TestSimplifyRemovesZeroTripLoop(t *testing.T) {
	mod := ir.NewModule("m")
	fn := mod.AddFunction("main")
	fn.Emit(op.Loop, ir.Int(0))
	fn.Emit(op.X, ir.StaticQubit{Address: 0})
	fn.Emit(op.EndLoop)
	fn.Emit(op.Ret)

	require.NoError(t, NewSimplify(nil).Run(mod))
	require.Equal(t, []string{"RET"}, renderFunction(fn))
}

func TestSimplifyLeavesDynamicLoop(t *testing.T) {
	mod := ir.NewModule("m")
	fn := mod.AddFunction("main")
	read := fn.Emit(op.ReadResult, ir.StaticResult{Address: 0})
	fn.Emit(op.Loop, read)
	fn.Emit(op.X, ir.StaticQubit{Address: 0})
	fn.Emit(op.EndLoop)

	require.NoError(t, NewSimplify(nil).Run(mod))
	require.Equal(t, 4, fn.InstructionCount())
	require.Equal(t, op.Loop, fn.Instruction(1).Op)
}

func TestSimplifyRespectsUnrollLimit(t *testing.T) {
	mod := ir.NewModule("m")
	fn := mod.AddFunction("main")
	fn.Emit(op.Loop, ir.Int(100))
	fn.Emit(op.X, ir.StaticQubit{Address: 0})
	fn.Emit(op.EndLoop)

	log := logger.NewCapture()
	require.NoError(t, NewSimplify(log, WithUnrollLimit(10)).Run(mod))
	require.Equal(t, 3, fn.InstructionCount())
	require.Equal(t, op.Loop, fn.Instruction(0).Op)

	msg, ok := log.Last()
	require.True(t, ok)
	require.Contains(t, msg.Text, "exceeds unroll limit")
}

func TestSimplifyRemovesNops(t *testing.T) {
	mod := ir.NewModule("m")
	fn := mod.AddFunction("main")
	fn.Emit(op.Nop)
	fn.Emit(op.H, ir.StaticQubit{Address: 0})
	fn.Emit(op.Nop)
	fn.Emit(op.Nop)
	fn.Emit(op.Ret)

	require.NoError(t, NewSimplify(nil).Run(mod))
	require.Equal(t, []string{
		"H qubit[0]",
		"RET",
	}, renderFunction(fn))
}

func TestSimplifyUnrollClonesRemapValues(t *testing.T) {
	// Value definitions inside the unrolled body must be cloned per
	// iteration: each copy's uses reference its own definitions.
	mod := ir.NewModule("m")
	fn := mod.AddFunction("main")
	fn.Emit(op.Loop, ir.Int(2))
	m := fn.Emit(op.Measure, ir.StaticQubit{Address: 0})
	fn.Emit(op.RecordOutput, m)
	fn.Emit(op.EndLoop)

	require.NoError(t, NewSimplify(nil).Run(mod))
	require.Equal(t, 4, fn.InstructionCount())

	first, second := fn.Instruction(0), fn.Instruction(2)
	require.Equal(t, op.Measure, first.Op)
	require.Equal(t, op.Measure, second.Op)
	require.NotSame(t, first, second)
	require.Same(t, first, fn.Instruction(1).Operands[0])
	require.Same(t, second, fn.Instruction(3).Operands[0])
}

func TestSimplifyName(t *testing.T) {
	require.Equal(t, "simplify", NewSimplify(nil).Name())
}
