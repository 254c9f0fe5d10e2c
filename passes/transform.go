package passes

import (
	"errors"
	"fmt"

	"github.com/qadapt-io/qadapt/errz"
	"github.com/qadapt-io/qadapt/ir"
	"github.com/qadapt-io/qadapt/logger"
	"github.com/qadapt-io/qadapt/op"
	"github.com/qadapt-io/qadapt/rules"
)

// TransformConfig configures the rule transformation pass.
type TransformConfig struct {
	// SimplifyPriorTransform runs the generic simplification pass before
	// rule application, canonicalizing instruction forms so rule predicates
	// need not special-case equivalent encodings.
	SimplifyPriorTransform bool

	// Factory selects the rule categories the pass applies.
	Factory rules.FactoryConfig
}

// DefaultTransformConfig returns the base profile transform configuration.
func DefaultTransformConfig() TransformConfig {
	return TransformConfig{
		SimplifyPriorTransform: true,
		Factory:                rules.DefaultConfig(),
	}
}

// Transform is the rule transformation pass: a single forward scan over
// each function's instructions, applying the first matching rule per
// instruction. Instructions spliced in by a rule action are not re-visited,
// which guarantees termination without a fixpoint iteration.
type Transform struct {
	ruleSet    *rules.RuleSet
	ctx        *rules.Context
	cfg        TransformConfig
	log        logger.Logger
	simplifier Pass
}

// TransformOption configures a Transform pass.
type TransformOption func(*Transform)

// WithSimplifier overrides the simplification pass run when
// SimplifyPriorTransform is set. Any equivalent optimizer can substitute
// for the default without affecting the rule engine's contract.
func WithSimplifier(p Pass) TransformOption {
	return func(t *Transform) {
		t.simplifier = p
	}
}

// NewTransform creates the rule transformation pass.
func NewTransform(rs *rules.RuleSet, ctx *rules.Context, cfg TransformConfig, log logger.Logger, opts ...TransformOption) *Transform {
	if log == nil {
		log = logger.Nop{}
	}
	t := &Transform{
		ruleSet: rs,
		ctx:     ctx,
		cfg:     cfg,
		log:     log,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.simplifier == nil {
		t.simplifier = NewSimplify(log)
	}
	return t
}

func (t *Transform) Name() string {
	return "transformation-rules"
}

// Run applies the rule set to every function in the module.
func (t *Transform) Run(mod *ir.Module) error {
	if t.cfg.SimplifyPriorTransform {
		if err := t.simplifier.Run(mod); err != nil {
			return t.report(err)
		}
	}
	for _, fn := range mod.Functions {
		if err := t.runFunction(fn); err != nil {
			return t.report(err)
		}
	}
	// A rule that produced a malformed stream is an engine bug, not a
	// problem with the program being lowered.
	if err := mod.Validate(); err != nil {
		return t.report(err)
	}
	return nil
}

// runFunction performs the single forward scan. Replacement instructions
// are skipped over; after a deletion the next original instruction shifts
// into the current index and is visited normally.
func (t *Transform) runFunction(fn *ir.Function) error {
	i := 0
	for i < len(fn.Instructions) {
		instr := fn.Instructions[i]
		loc := instr.Location
		t.log.SetLocation(loc.Filename, loc.Line, loc.Column)

		switch instr.Op {
		case op.Loop:
			t.ctx.EnterLoop()
		case op.EndLoop:
			t.ctx.LeaveLoop()
		}

		rule, ok := t.ruleSet.FirstMatch(instr)
		if !ok {
			i++
			continue
		}
		rewrite, err := rule.Apply(instr, t.ctx)
		if err != nil {
			return err
		}
		switch rewrite.Kind {
		case rules.KindUnchanged:
			i++
		case rules.KindReplace:
			n := fn.ReplaceAt(i, rewrite.Instructions...)
			if rewrite.Value != nil {
				fn.SubstituteValue(instr, rewrite.Value)
			}
			t.log.Debug(fmt.Sprintf("rule %q replaced %s", rule.Name, instr.Render()))
			i += n
		case rules.KindDelete:
			fn.DeleteAt(i)
			if rewrite.Value != nil {
				fn.SubstituteValue(instr, rewrite.Value)
			}
			t.log.Debug(fmt.Sprintf("rule %q deleted %s", rule.Name, instr.Render()))
		default:
			return errz.InternalErrorf("rule %q returned unknown rewrite kind %d", rule.Name, rewrite.Kind)
		}
	}
	return nil
}

// report surfaces the error through the logger before propagating it. No
// partial output is ever emitted on a fatal error.
func (t *Transform) report(err error) error {
	var zerr *errz.Error
	if errors.As(err, &zerr) {
		if !zerr.Location.IsZero() {
			t.log.SetLocation(zerr.Location.Filename, zerr.Location.Line, zerr.Location.Column)
		}
		if zerr.IsInternal() {
			t.log.InternalError(zerr.Message)
		} else {
			t.log.Error(zerr.Message)
		}
		return err
	}
	t.log.Error(err.Error())
	return err
}
