// Package qadapt lowers a generic quantum IR module into a target profile
// with statically addressed qubits and measurement results.
package qadapt

import (
	"github.com/qadapt-io/qadapt/ir"
	"github.com/qadapt-io/qadapt/profile"
)

// Result is the outcome of a successful lowering: the module, rewritten in
// place, plus the static resource requirements recorded while lowering.
type Result struct {
	Module   *ir.Module
	Metadata profile.Metadata
}

// Lower rewrites the module into its lowered form. The module is modified
// in place; on error it may have been partially rewritten up to the
// failure point but carries no resource metadata.
func Lower(mod *ir.Module, opts ...Option) (*Result, error) {
	o := collectOptions(opts...)
	p, err := profile.Setup(o.generatorConfig(), o.profileOpts()...)
	if err != nil {
		return nil, err
	}
	if err := p.Run(mod); err != nil {
		return nil, err
	}
	return &Result{Module: mod, Metadata: p.Metadata()}, nil
}
