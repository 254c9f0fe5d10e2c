package rules

import (
	"errors"
	"fmt"

	"github.com/qadapt-io/qadapt/alloc"
	"github.com/qadapt-io/qadapt/errz"
	"github.com/qadapt-io/qadapt/ir"
	"github.com/qadapt-io/qadapt/logger"
	"github.com/qadapt-io/qadapt/op"
)

// Rule priorities establish the category order: resource lowering first,
// then release handling, then measurement/branch simplification, then
// generic cleanup. Lowering must run before any rule that assumes static
// addressing.
const (
	priorityQubitAllocation  = 100
	priorityResultAllocation = 90
	priorityQubitRelease     = 80
	priorityBranchFold       = 60
	priorityRefCount         = 50
	priorityCleanup          = 10
)

// Factory builds a RuleSet from a FactoryConfig, wiring in the profile's
// allocation managers so that rules can assign static addresses.
type Factory struct {
	ruleSet *RuleSet
	qubits  *alloc.Manager
	results *alloc.Manager
	log     logger.Logger
}

// NewFactory creates a Factory appending to the given rule set.
func NewFactory(rs *RuleSet, qubits, results *alloc.Manager, log logger.Logger) *Factory {
	if log == nil {
		log = logger.Nop{}
	}
	return &Factory{ruleSet: rs, qubits: qubits, results: results, log: log}
}

// UsingConfiguration interprets the configuration and appends the
// corresponding rules in fixed category order. A contradictory
// configuration fails here, before any instruction is visited.
func (f *Factory) UsingConfiguration(cfg FactoryConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.UseStaticQubitAllocation {
		f.useStaticQubitAllocation()
		if !cfg.EmitQubitRelease {
			f.removeQubitReleases()
		}
	}
	if cfg.UseStaticResultAllocation {
		f.useStaticResultAllocation()
	}
	if cfg.FoldConstantBranches {
		f.foldConstantBranches()
	}
	if cfg.DisableReferenceCounting {
		f.disableReferenceCounting()
	}
	f.cleanup()
	f.log.Debug(fmt.Sprintf("rule set assembled with %d rules", f.ruleSet.Len()))
	return nil
}

// addRule appends a rule to the set.
func (f *Factory) addRule(rule *Rule) {
	f.ruleSet.Add(rule)
}

// useStaticQubitAllocation is the central lowering step for qubits: a
// dynamic allocation is deleted and all uses of its handle are redirected
// to the next statically numbered qubit slot. The predicate only matches
// dynamic allocations, so already-lowered references are never rewritten
// again.
func (f *Factory) useStaticQubitAllocation() {
	f.addRule(&Rule{
		Name:     "static-qubit-allocation",
		Priority: priorityQubitAllocation,
		Match: func(instr *ir.Instruction) bool {
			return instr.Op == op.QubitAlloc
		},
		Apply: func(instr *ir.Instruction, ctx *Context) (Rewrite, error) {
			if ctx.InLoop() {
				return Rewrite{}, errz.New(errz.ErrUnsupportedLowering,
					instr.Location,
					"qubit allocation inside a loop with statically-unknown repetition cannot be lowered")
			}
			addr, err := ctx.Qubits.Allocate(instr)
			if err != nil {
				return Rewrite{}, withLocation(err, instr.Location)
			}
			return Delete().WithValue(ir.StaticQubit{Address: addr}), nil
		},
	})
}

// useStaticResultAllocation rewrites a measurement of a statically
// addressed qubit into a measurement writing to a statically numbered
// result slot. Uses of the dynamic result handle are redirected to the
// slot. Already-lowered MEASURE_OUT instructions do not match.
func (f *Factory) useStaticResultAllocation() {
	f.addRule(&Rule{
		Name:     "static-result-allocation",
		Priority: priorityResultAllocation,
		Match: func(instr *ir.Instruction) bool {
			return instr.Op == op.Measure &&
				len(instr.Operands) == 1 &&
				ir.IsStatic(instr.Operands[0])
		},
		Apply: func(instr *ir.Instruction, ctx *Context) (Rewrite, error) {
			if ctx.InLoop() {
				return Rewrite{}, errz.New(errz.ErrUnsupportedLowering,
					instr.Location,
					"measurement inside a loop with statically-unknown repetition cannot be lowered")
			}
			addr, err := ctx.Results.Allocate(instr)
			if err != nil {
				return Rewrite{}, withLocation(err, instr.Location)
			}
			slot := ir.StaticResult{Address: addr}
			lowered := &ir.Instruction{
				Op:       op.MeasureOut,
				Operands: []ir.Value{instr.Operands[0], slot},
				Location: instr.Location,
			}
			return Replace(lowered).WithValue(slot), nil
		},
	})
}

// removeQubitReleases deletes release markers for statically addressed
// qubits. Static slots live for the whole program, so the marker carries no
// information unless the target profile asks for it.
func (f *Factory) removeQubitReleases() {
	f.addRule(&Rule{
		Name:     "remove-qubit-release",
		Priority: priorityQubitRelease,
		Match: func(instr *ir.Instruction) bool {
			return instr.Op == op.QubitRelease &&
				len(instr.Operands) == 1 &&
				ir.IsStatic(instr.Operands[0])
		},
		Apply: func(instr *ir.Instruction, ctx *Context) (Rewrite, error) {
			return Delete(), nil
		},
	})
}

// foldConstantBranches folds result comparisons whose operands are both
// compile time constants. Comparisons involving runtime results are left
// unchanged.
func (f *Factory) foldConstantBranches() {
	f.addRule(&Rule{
		Name:     "fold-constant-branches",
		Priority: priorityBranchFold,
		Match: func(instr *ir.Instruction) bool {
			return instr.Op == op.CmpResult && len(instr.Operands) == 2
		},
		Apply: func(instr *ir.Instruction, ctx *Context) (Rewrite, error) {
			lhs, rhs := instr.Operands[0], instr.Operands[1]
			if !ir.IsConstant(lhs) || !ir.IsConstant(rhs) {
				return Unchanged(), nil
			}
			return Delete().WithValue(ir.Bool(lhs == rhs)), nil
		},
	})
}

// disableReferenceCounting deletes reference count bookkeeping.
func (f *Factory) disableReferenceCounting() {
	f.addRule(&Rule{
		Name:     "remove-refcount-update",
		Priority: priorityRefCount,
		Match: func(instr *ir.Instruction) bool {
			return instr.Op == op.RefCountUpdate
		},
		Apply: func(instr *ir.Instruction, ctx *Context) (Rewrite, error) {
			return Delete(), nil
		},
	})
}

// cleanup removes no-ops.
func (f *Factory) cleanup() {
	f.addRule(&Rule{
		Name:     "remove-nop",
		Priority: priorityCleanup,
		Match: func(instr *ir.Instruction) bool {
			return instr.Op == op.Nop
		},
		Apply: func(instr *ir.Instruction, ctx *Context) (Rewrite, error) {
			return Delete(), nil
		},
	})
}

// withLocation attributes an otherwise location-free structured error to
// the given instruction position.
func withLocation(err error, loc errz.SourceLocation) error {
	var zerr *errz.Error
	if errors.As(err, &zerr) && zerr.Location.IsZero() {
		zerr.Location = loc
	}
	return err
}
