// Package rules implements the declarative pattern/rewrite engine at the
// heart of profile lowering. A Rule pairs a pure predicate with an action;
// a RuleSet applies at most one rule per instruction per visit; the Factory
// assembles a RuleSet from configuration, wiring in the allocation managers
// so actions can turn dynamic resource requests into static addresses.
package rules

import (
	"github.com/qadapt-io/qadapt/alloc"
	"github.com/qadapt-io/qadapt/ir"
	"github.com/qadapt-io/qadapt/logger"
)

// Rule matches and rewrites a single instruction.
type Rule struct {
	// Name identifies the rule in logs and diagnostics.
	Name string

	// Priority orders rules within a set; higher fires first. Ties break
	// by insertion order.
	Priority int

	// Match is the rule predicate. It must be pure: a single pass tests
	// several rules per instruction and partial side effects would corrupt
	// the stream.
	Match func(*ir.Instruction) bool

	// Apply rewrites the matched instruction, possibly consulting the
	// allocation managers through the context.
	Apply func(*ir.Instruction, *Context) (Rewrite, error)
}

// Context carries the state a rule action may consult or mutate: the two
// allocation managers owned by the profile, the logger, and the scan
// position's loop depth maintained by the transformation pass.
type Context struct {
	Qubits  *alloc.Manager
	Results *alloc.Manager
	Log     logger.Logger

	loopDepth int
}

// NewContext creates a rule context around the given allocation managers.
func NewContext(qubits, results *alloc.Manager, log logger.Logger) *Context {
	if log == nil {
		log = logger.Nop{}
	}
	return &Context{Qubits: qubits, Results: results, Log: log}
}

// EnterLoop records that the scan entered a loop region.
func (c *Context) EnterLoop() {
	c.loopDepth++
}

// LeaveLoop records that the scan left a loop region.
func (c *Context) LeaveLoop() {
	if c.loopDepth > 0 {
		c.loopDepth--
	}
}

// InLoop reports whether the scan position is inside a loop region. Static
// addressing is impossible there: a single forward pass cannot prove the
// allocation executes exactly once.
func (c *Context) InLoop() bool {
	return c.loopDepth > 0
}

// RewriteKind discriminates the outcomes of a rule action.
type RewriteKind int

const (
	// KindUnchanged leaves the instruction in place.
	KindUnchanged RewriteKind = iota
	// KindReplace splices replacement instructions in place of the
	// original. Replacements are not re-visited in the same pass.
	KindReplace
	// KindDelete removes the instruction.
	KindDelete
)

// Rewrite is the result of a rule action.
type Rewrite struct {
	Kind         RewriteKind
	Instructions []*ir.Instruction

	// Value, when set, is substituted for the original instruction's uses
	// throughout the function. This is how a dynamic handle's consumers are
	// redirected to a static resource reference.
	Value ir.Value
}

// Unchanged reports that the rule declined to act.
func Unchanged() Rewrite {
	return Rewrite{Kind: KindUnchanged}
}

// Replace substitutes the instruction with the given replacements.
func Replace(instrs ...*ir.Instruction) Rewrite {
	return Rewrite{Kind: KindReplace, Instructions: instrs}
}

// Delete removes the instruction.
func Delete() Rewrite {
	return Rewrite{Kind: KindDelete}
}

// WithValue attaches a substitution value for the original instruction's
// uses.
func (r Rewrite) WithValue(v ir.Value) Rewrite {
	r.Value = v
	return r
}
