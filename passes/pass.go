// Package passes implements the module transformation passes scheduled by a
// profile: the rule-driven lowering pass, the generic simplification pass,
// function inlining, and the textual pass pipeline parser.
package passes

import (
	"github.com/qadapt-io/qadapt/ir"
)

// Pass transforms a module in place.
type Pass interface {
	// Name identifies the pass in pipeline listings.
	Name() string

	// Run executes the pass over the module. A non-nil error aborts the
	// pipeline; the module is left unmodified from the point of failure
	// forward.
	Run(mod *ir.Module) error
}

type funcPass struct {
	name string
	fn   func(*ir.Module) error
}

func (p *funcPass) Name() string            { return p.name }
func (p *funcPass) Run(mod *ir.Module) error { return p.fn(mod) }

// NewFunc adapts a function to the Pass interface.
func NewFunc(name string, fn func(*ir.Module) error) Pass {
	return &funcPass{name: name, fn: fn}
}

// Manager runs passes in the order they were added, stopping at the first
// error.
type Manager struct {
	passes []Pass
}

// NewManager creates an empty pass manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add appends passes to the pipeline.
func (m *Manager) Add(passes ...Pass) {
	m.passes = append(m.passes, passes...)
}

// Run executes the pipeline over the module.
func (m *Manager) Run(mod *ir.Module) error {
	for _, p := range m.passes {
		if err := p.Run(mod); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of scheduled passes.
func (m *Manager) Len() int {
	return len(m.passes)
}

// Names returns the scheduled pass names in execution order.
func (m *Manager) Names() []string {
	names := make([]string, len(m.passes))
	for i, p := range m.passes {
		names[i] = p.Name()
	}
	return names
}
