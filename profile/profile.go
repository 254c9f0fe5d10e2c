// Package profile assembles and runs a target profile: the pass pipeline
// plus the static allocation managers whose counts become the lowered
// module's resource metadata.
package profile

import (
	"strconv"

	"github.com/gofrs/uuid"

	"github.com/qadapt-io/qadapt/alloc"
	"github.com/qadapt-io/qadapt/ir"
	"github.com/qadapt-io/qadapt/logger"
	"github.com/qadapt-io/qadapt/passes"
)

// Metadata describes the static resources a lowered module requires.
type Metadata struct {
	RequiredQubits  int64 `json:"requiredQubits"`
	RequiredResults int64 `json:"requiredResults"`
}

// Profile owns the allocation managers and the module pass pipeline for
// one compilation unit. A profile is never shared between units.
type Profile struct {
	id       string
	qubits   *alloc.Manager
	results  *alloc.Manager
	passMgr  *passes.Manager
	log      logger.Logger
	metadata Metadata
	ran      bool
}

// Option configures a Profile.
type Option func(*profileConfig)

type profileConfig struct {
	maxQubits  int64
	maxResults int64
	log        logger.Logger
}

// WithMaxQubits bounds the number of static qubits the profile may use.
// Zero means unbounded.
func WithMaxQubits(n int64) Option {
	return func(cfg *profileConfig) {
		cfg.maxQubits = n
	}
}

// WithMaxResults bounds the number of static result slots. Zero means
// unbounded.
func WithMaxResults(n int64) Option {
	return func(cfg *profileConfig) {
		cfg.maxResults = n
	}
}

// WithLogger sets the logger used by the profile's passes.
func WithLogger(log logger.Logger) Option {
	return func(cfg *profileConfig) {
		cfg.log = log
	}
}

// New creates an empty profile. Allocation managers are created fresh per
// profile and discarded with it.
func New(opts ...Option) *Profile {
	cfg := &profileConfig{log: logger.Nop{}}
	for _, opt := range opts {
		opt(cfg)
	}
	id, _ := uuid.NewV4()
	return &Profile{
		id:      id.String(),
		qubits:  alloc.New("qubit", alloc.WithLimit(cfg.maxQubits)),
		results: alloc.New("result", alloc.WithLimit(cfg.maxResults)),
		passMgr: passes.NewManager(),
		log:     cfg.log,
	}
}

// ID returns the profile's unique identifier.
func (p *Profile) ID() string {
	return p.id
}

// QubitAllocationManager returns the manager assigning static qubit
// addresses.
func (p *Profile) QubitAllocationManager() *alloc.Manager {
	return p.qubits
}

// ResultAllocationManager returns the manager assigning static result
// addresses.
func (p *Profile) ResultAllocationManager() *alloc.Manager {
	return p.results
}

// PassManager returns the module pass pipeline being assembled.
func (p *Profile) PassManager() *passes.Manager {
	return p.passMgr
}

// Logger returns the profile's logger.
func (p *Profile) Logger() logger.Logger {
	return p.log
}

// Run executes the assembled pipeline over the module. On success the
// allocation managers' counts are stamped onto the module as resource
// attributes. On failure the module carries no metadata and nothing after
// the failure point was modified.
func (p *Profile) Run(mod *ir.Module) error {
	if err := p.passMgr.Run(mod); err != nil {
		return err
	}
	p.metadata = Metadata{
		RequiredQubits:  p.qubits.Count(),
		RequiredResults: p.results.Count(),
	}
	p.ran = true
	mod.SetAttribute(ir.AttrRequiredQubits, strconv.FormatInt(p.metadata.RequiredQubits, 10))
	mod.SetAttribute(ir.AttrRequiredResults, strconv.FormatInt(p.metadata.RequiredResults, 10))
	return nil
}

// Metadata returns the resource counts recorded by the last successful
// Run.
func (p *Profile) Metadata() Metadata {
	return p.metadata
}

// Ran reports whether the profile pipeline has completed successfully.
func (p *Profile) Ran() bool {
	return p.ran
}
