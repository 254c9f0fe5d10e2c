package passes

import (
	"fmt"

	"github.com/qadapt-io/qadapt/ir"
	"github.com/qadapt-io/qadapt/logger"
	"github.com/qadapt-io/qadapt/op"
)

// DefaultUnrollLimit bounds the trip count of loops the simplifier will
// unroll. Larger loops are left intact for the lowering pass to reject if
// they contain resource allocations.
const DefaultUnrollLimit = 64

// Simplify canonicalizes instruction forms before rule application: folds
// constant result comparisons, unrolls constant-trip loop regions, and
// removes no-ops. It stands in for the host's generic simplification
// pipeline; any equivalent optimizer may substitute.
type Simplify struct {
	UnrollLimit int
	log         logger.Logger
}

// SimplifyOption configures a Simplify pass.
type SimplifyOption func(*Simplify)

// WithUnrollLimit overrides the maximum trip count for loop unrolling.
func WithUnrollLimit(n int) SimplifyOption {
	return func(s *Simplify) {
		s.UnrollLimit = n
	}
}

// NewSimplify creates the simplification pass.
func NewSimplify(log logger.Logger, opts ...SimplifyOption) *Simplify {
	if log == nil {
		log = logger.Nop{}
	}
	s := &Simplify{UnrollLimit: DefaultUnrollLimit, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simplify) Name() string {
	return "simplify"
}

// Run simplifies every function in the module.
func (s *Simplify) Run(mod *ir.Module) error {
	for _, fn := range mod.Functions {
		s.foldConstants(fn)
		s.unrollLoops(fn)
		s.removeNops(fn)
	}
	return nil
}

// foldConstants folds result comparisons with two constant operands and
// redirects their uses to the folded boolean.
func (s *Simplify) foldConstants(fn *ir.Function) {
	i := 0
	for i < len(fn.Instructions) {
		instr := fn.Instructions[i]
		if instr.Op == op.CmpResult && len(instr.Operands) == 2 &&
			ir.IsConstant(instr.Operands[0]) && ir.IsConstant(instr.Operands[1]) {
			folded := ir.Bool(instr.Operands[0] == instr.Operands[1])
			fn.DeleteAt(i)
			fn.SubstituteValue(instr, folded)
			continue
		}
		i++
	}
}

// unrollLoops expands innermost loop regions with a constant trip count of
// at most UnrollLimit into repeated copies of the body. Dynamic trip counts
// and oversized loops are left intact. Each unroll removes one loop region
// and copies contain no nested loops, so the fixpoint terminates.
func (s *Simplify) unrollLoops(fn *ir.Function) {
	skipped := map[*ir.Instruction]bool{}
	for {
		if !s.unrollOnce(fn, skipped) {
			return
		}
	}
}

func (s *Simplify) unrollOnce(fn *ir.Function, skipped map[*ir.Instruction]bool) bool {
	lastLoop := -1
	for i := 0; i < len(fn.Instructions); i++ {
		instr := fn.Instructions[i]
		switch instr.Op {
		case op.Loop:
			lastLoop = i
		case op.EndLoop:
			if lastLoop < 0 {
				return false
			}
			header := fn.Instructions[lastLoop]
			if skipped[header] {
				lastLoop = -1
				continue
			}
			trip, ok := header.Operands[0].(ir.Int)
			if !ok {
				skipped[header] = true
				lastLoop = -1
				continue
			}
			n := int(trip)
			if n > s.UnrollLimit {
				s.log.Debug(fmt.Sprintf(
					"loop with trip count %d exceeds unroll limit %d, leaving intact",
					n, s.UnrollLimit))
				skipped[header] = true
				lastLoop = -1
				continue
			}
			body := fn.Instructions[lastLoop+1 : i]
			var expansion []*ir.Instruction
			for rep := 0; rep < n; rep++ {
				expansion = append(expansion, cloneStream(body)...)
			}
			// Splice the expansion in place of [Loop .. EndLoop].
			rest := make([]*ir.Instruction, len(fn.Instructions[i+1:]))
			copy(rest, fn.Instructions[i+1:])
			fn.Instructions = append(fn.Instructions[:lastLoop], append(expansion, rest...)...)
			return true
		}
	}
	return false
}

// removeNops deletes no-op instructions.
func (s *Simplify) removeNops(fn *ir.Function) {
	i := 0
	for i < len(fn.Instructions) {
		if fn.Instructions[i].Op == op.Nop {
			fn.DeleteAt(i)
			continue
		}
		i++
	}
}
