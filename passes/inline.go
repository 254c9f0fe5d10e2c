package passes

import (
	"fmt"

	"github.com/qadapt-io/qadapt/errz"
	"github.com/qadapt-io/qadapt/ir"
	"github.com/qadapt-io/qadapt/logger"
	"github.com/qadapt-io/qadapt/op"
)

// inlineDepthLimit bounds transitive inlining so call chains terminate.
const inlineDepthLimit = 8

// AlwaysInline splices callee bodies into their callers. Profiles that
// forbid subroutine calls run this before the rule transformation so every
// resource allocation is visible in the entry function's single stream.
type AlwaysInline struct {
	log logger.Logger
}

// NewAlwaysInline creates the inlining pass.
func NewAlwaysInline(log logger.Logger) *AlwaysInline {
	if log == nil {
		log = logger.Nop{}
	}
	return &AlwaysInline{log: log}
}

func (p *AlwaysInline) Name() string {
	return "always-inline"
}

// Run inlines calls in every function, repeating up to the depth limit so
// transitive calls flatten. Recursive calls are an unsupported lowering:
// they cannot flatten into a finite stream.
func (p *AlwaysInline) Run(mod *ir.Module) error {
	for _, fn := range mod.Functions {
		for depth := 0; ; depth++ {
			changed, err := p.inlineCalls(mod, fn)
			if err != nil {
				return err
			}
			if !changed {
				break
			}
			if depth >= inlineDepthLimit {
				return errz.Newf(errz.ErrUnsupportedLowering, errz.SourceLocation{},
					"call chain in function %q exceeds inline depth %d",
					fn.Name, inlineDepthLimit)
			}
		}
	}
	return nil
}

func (p *AlwaysInline) inlineCalls(mod *ir.Module, fn *ir.Function) (bool, error) {
	changed := false
	i := 0
	for i < len(fn.Instructions) {
		instr := fn.Instructions[i]
		if instr.Op != op.Call || len(instr.Operands) != 1 {
			i++
			continue
		}
		target, ok := instr.Operands[0].(ir.FunctionRef)
		if !ok {
			i++
			continue
		}
		callee := mod.Function(target.Name)
		if callee == nil {
			return false, errz.Newf(errz.ErrUnsupportedLowering, instr.Location,
				"call to undefined function %q", target.Name)
		}
		if callee == fn {
			return false, errz.Newf(errz.ErrUnsupportedLowering, instr.Location,
				"recursive call to %q cannot be inlined", target.Name)
		}
		body := cloneStream(calleeBody(callee))
		n := fn.ReplaceAt(i, body...)
		p.log.Debug(fmt.Sprintf("inlined %d instruction(s) from %q into %q",
			n, callee.Name, fn.Name))
		i += n
		changed = true
	}
	return changed, nil
}

// calleeBody returns a function's instructions without the trailing return.
func calleeBody(fn *ir.Function) []*ir.Instruction {
	body := fn.Instructions
	if len(body) > 0 && body[len(body)-1].Op == op.Ret {
		body = body[:len(body)-1]
	}
	return body
}
