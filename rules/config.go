package rules

import (
	"github.com/hashicorp/go-multierror"

	"github.com/qadapt-io/qadapt/errz"
)

// FactoryConfig is the declarative description of which rule categories the
// Factory enables and their parameters. It is immutable once read by
// UsingConfiguration.
type FactoryConfig struct {
	// UseStaticQubitAllocation replaces dynamic qubit allocations with
	// references to statically numbered qubit slots.
	UseStaticQubitAllocation bool

	// UseStaticResultAllocation rewrites measurements to write into
	// statically numbered result slots. Requires static qubit allocation,
	// since the measurement rewrite only matches static qubit operands.
	UseStaticResultAllocation bool

	// EmitQubitRelease keeps explicit release markers for statically
	// addressed qubits instead of deleting them. Requires static qubit
	// allocation.
	EmitQubitRelease bool

	// FoldConstantBranches folds result comparisons whose operands are
	// compile time constants.
	FoldConstantBranches bool

	// DisableReferenceCounting deletes reference count bookkeeping calls,
	// which have no meaning once resources are statically addressed.
	DisableReferenceCounting bool
}

// DefaultConfig returns the base profile configuration: full static
// allocation, no release markers, branch folding and reference count
// removal enabled.
func DefaultConfig() FactoryConfig {
	return FactoryConfig{
		UseStaticQubitAllocation:  true,
		UseStaticResultAllocation: true,
		EmitQubitRelease:          false,
		FoldConstantBranches:      true,
		DisableReferenceCounting:  true,
	}
}

// Validate rejects self-contradictory configurations. All conflicts are
// reported together, before any instruction is visited.
func (c FactoryConfig) Validate() error {
	var result *multierror.Error
	if c.UseStaticResultAllocation && !c.UseStaticQubitAllocation {
		result = multierror.Append(result, errz.ConfigErrorf(
			"static result allocation requires static qubit allocation"))
	}
	if c.EmitQubitRelease && !c.UseStaticQubitAllocation {
		result = multierror.Append(result, errz.ConfigErrorf(
			"release markers require static qubit allocation"))
	}
	return result.ErrorOrNil()
}
