package qadapt

import (
	"github.com/qadapt-io/qadapt/logger"
	"github.com/qadapt-io/qadapt/passes"
	"github.com/qadapt-io/qadapt/profile"
	"github.com/qadapt-io/qadapt/rules"
)

// Option configures a lowering run.
type Option func(*options)

type options struct {
	log          logger.Logger
	maxQubits    int64
	maxResults   int64
	transform    passes.TransformConfig
	transformSet bool
	factory      rules.FactoryConfig
	factorySet   bool
	pipeline     profile.PipelineConfig
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) generatorConfig() profile.Config {
	cfg := profile.DefaultGeneratorConfig()
	if o.transformSet {
		cfg.Transform = o.transform
	}
	if o.factorySet {
		cfg.Transform.Factory = o.factory
	}
	cfg.Pipeline = o.pipeline
	return cfg
}

func (o *options) profileOpts() []profile.Option {
	var opts []profile.Option
	if o.log != nil {
		opts = append(opts, profile.WithLogger(o.log))
	}
	if o.maxQubits > 0 {
		opts = append(opts, profile.WithMaxQubits(o.maxQubits))
	}
	if o.maxResults > 0 {
		opts = append(opts, profile.WithMaxResults(o.maxResults))
	}
	return opts
}

// WithLogger sets the logger receiving pass diagnostics. The default
// discards them.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithMaxQubits bounds the number of static qubits the lowered module may
// require. Exceeding the bound is a resource exhaustion error.
func WithMaxQubits(n int64) Option {
	return func(o *options) {
		o.maxQubits = n
	}
}

// WithMaxResults bounds the number of static measurement result slots.
func WithMaxResults(n int64) Option {
	return func(o *options) {
		o.maxResults = n
	}
}

// WithFactoryConfig selects which rule categories the lowering applies.
func WithFactoryConfig(cfg rules.FactoryConfig) Option {
	return func(o *options) {
		o.factory = cfg
		o.factorySet = true
	}
}

// WithTransformConfig replaces the whole transformation pass
// configuration, including the rule factory configuration. A later
// WithFactoryConfig still overrides the factory portion.
func WithTransformConfig(cfg passes.TransformConfig) Option {
	return func(o *options) {
		o.transform = cfg
		o.transformSet = true
	}
}

// WithPipelineConfig configures the generic pass pipeline scheduled after
// the transformation rules.
func WithPipelineConfig(cfg profile.PipelineConfig) Option {
	return func(o *options) {
		o.pipeline = cfg
	}
}
