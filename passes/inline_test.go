package passes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qadapt-io/qadapt/errz"
	"github.com/qadapt-io/qadapt/ir"
	"github.com/qadapt-io/qadapt/op"
)

func TestInlineSingleCall(t *testing.T) {
	mod := ir.NewModule("m")
	main := mod.AddFunction("main")
	main.Emit(op.Call, ir.FunctionRef{Name: "prep"})
	main.Emit(op.Ret)

	prep := mod.AddFunction("prep")
	prep.Emit(op.H, ir.StaticQubit{Address: 0})
	prep.Emit(op.Ret)

	require.NoError(t, NewAlwaysInline(nil).Run(mod))
	require.Equal(t, []string{
		"H qubit[0]",
		"RET",
	}, renderFunction(main))
}

func TestInlineTransitiveCalls(t *testing.T) {
	mod := ir.NewModule("m")
	main := mod.AddFunction("main")
	main.Emit(op.Call, ir.FunctionRef{Name: "a"})
	main.Emit(op.Ret)

	a := mod.AddFunction("a")
	a.Emit(op.X, ir.StaticQubit{Address: 0})
	a.Emit(op.Call, ir.FunctionRef{Name: "b"})
	a.Emit(op.Ret)

	b := mod.AddFunction("b")
	b.Emit(op.Z, ir.StaticQubit{Address: 0})
	b.Emit(op.Ret)

	require.NoError(t, NewAlwaysInline(nil).Run(mod))
	require.Equal(t, []string{
		"X qubit[0]",
		"Z qubit[0]",
		"RET",
	}, renderFunction(main))
}

func TestInlineRepeatedCallsCloneValues(t *testing.T) {
	mod := ir.NewModule("m")
	main := mod.AddFunction("main")
	main.Emit(op.Call, ir.FunctionRef{Name: "measure"})
	main.Emit(op.Call, ir.FunctionRef{Name: "measure"})
	main.Emit(op.Ret)

	helper := mod.AddFunction("measure")
	m := helper.Emit(op.Measure, ir.StaticQubit{Address: 0})
	helper.Emit(op.RecordOutput, m)
	helper.Emit(op.Ret)

	require.NoError(t, NewAlwaysInline(nil).Run(mod))
	require.Equal(t, 5, main.InstructionCount())

	first, second := main.Instruction(0), main.Instruction(2)
	require.Equal(t, op.Measure, first.Op)
	require.Equal(t, op.Measure, second.Op)
	require.NotSame(t, first, second)
	require.Same(t, first, main.Instruction(1).Operands[0])
	require.Same(t, second, main.Instruction(3).Operands[0])
}

func TestInlineUndefinedCallee(t *testing.T) {
	mod := ir.NewModule("m")
	main := mod.AddFunction("main")
	loc := errz.SourceLocation{Filename: "m.ll", Line: 2, Column: 1}
	main.EmitAt(loc, op.Call, ir.FunctionRef{Name: "missing"})

	err := NewAlwaysInline(nil).Run(mod)
	require.Error(t, err)
	var zerr *errz.Error
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, errz.ErrUnsupportedLowering, zerr.Kind)
	require.Equal(t, loc, zerr.Location)
	require.Contains(t, err.Error(), `call to undefined function "missing"`)
}

func TestInlineRecursionRejected(t *testing.T) {
	mod := ir.NewModule("m")
	main := mod.AddFunction("main")
	main.Emit(op.Call, ir.FunctionRef{Name: "main"})

	err := NewAlwaysInline(nil).Run(mod)
	require.Error(t, err)
	require.Contains(t, err.Error(), `recursive call to "main"`)
}

func TestInlineMutualRecursionRejected(t *testing.T) {
	mod := ir.NewModule("m")
	a := mod.AddFunction("a")
	a.Emit(op.Call, ir.FunctionRef{Name: "b"})
	b := mod.AddFunction("b")
	b.Emit(op.Call, ir.FunctionRef{Name: "a"})

	// Inlining b into a leaves a self-call, which is then rejected.
	err := NewAlwaysInline(nil).Run(mod)
	require.Error(t, err)
	var zerr *errz.Error
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, errz.ErrUnsupportedLowering, zerr.Kind)
	require.Contains(t, err.Error(), `recursive call to "a"`)
}

func TestInlineDeepChainHitsDepthLimit(t *testing.T) {
	mod := ir.NewModule("m")
	const depth = 12
	for i := 0; i < depth; i++ {
		fn := mod.AddFunction(fnName(i))
		if i < depth-1 {
			fn.Emit(op.Call, ir.FunctionRef{Name: fnName(i + 1)})
		} else {
			fn.Emit(op.X, ir.StaticQubit{Address: 0})
		}
		fn.Emit(op.Ret)
	}

	err := NewAlwaysInline(nil).Run(mod)
	require.Error(t, err)
	var zerr *errz.Error
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, errz.ErrUnsupportedLowering, zerr.Kind)
	require.Contains(t, err.Error(), "exceeds inline depth")
}

func fnName(i int) string {
	return string(rune('a' + i))
}

func TestInlineName(t *testing.T) {
	require.Equal(t, "always-inline", NewAlwaysInline(nil).Name())
}
