package profile

import (
	"errors"
	"fmt"

	"github.com/qadapt-io/qadapt/errz"
	"github.com/qadapt-io/qadapt/passes"
	"github.com/qadapt-io/qadapt/rules"
)

// PipelineConfig is the configuration surface of the generic pass pipeline
// component.
type PipelineConfig struct {
	// PassPipeline, when non-empty, bypasses the built-in pipeline choices
	// and schedules an arbitrary textual pipeline description. A
	// description that fails to parse is a configuration error.
	PassPipeline string

	// AlwaysInline schedules the inlining pass when no explicit pipeline
	// is given.
	AlwaysInline bool

	// DisableDefaultPipeline suppresses the fallback simplification
	// pipeline. With no explicit pipeline and AlwaysInline unset, the
	// component then contributes no passes at all.
	DisableDefaultPipeline bool
}

// Config aggregates the configuration of the default generator's
// components.
type Config struct {
	Transform passes.TransformConfig
	Pipeline  PipelineConfig
}

// DefaultGeneratorConfig returns the base profile generator configuration.
func DefaultGeneratorConfig() Config {
	return Config{
		Transform: passes.DefaultTransformConfig(),
	}
}

// ComponentFunc appends a component's passes to the profile's pass
// manager. Failure aborts pipeline setup before the module is touched.
type ComponentFunc func(p *Profile) error

type component struct {
	name string
	fn   ComponentFunc
}

// Generator assembles a profile's pass pipeline from named, registrable
// components. Components run in registration order; registration is fixed
// before any pass begins and read-only thereafter.
type Generator struct {
	components []component
}

// NewGenerator creates an empty generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// RegisterComponent appends a named pipeline component.
func (g *Generator) RegisterComponent(name string, fn ComponentFunc) {
	g.components = append(g.components, component{name: name, fn: fn})
}

// ComponentNames returns the registered component names in order.
func (g *Generator) ComponentNames() []string {
	names := make([]string, len(g.components))
	for i, c := range g.components {
		names[i] = c.name
	}
	return names
}

// SetupPipeline invokes every component against the profile. Any failure
// is a pipeline setup error that aborts compilation before the first pass
// runs.
func (g *Generator) SetupPipeline(p *Profile) error {
	for _, c := range g.components {
		if err := c.fn(p); err != nil {
			return fmt.Errorf("failed to set pipeline component %q up: %w", c.name, err)
		}
	}
	return nil
}

// NewDefaultGenerator registers the standard components:
//
//   - "transformation-rules" materializes a rule set from the factory
//     configuration, wiring in the profile's allocation managers, and
//     schedules the rule transformation pass.
//   - "pipeline" schedules generic passes: an explicit textual pipeline
//     when given, otherwise inlining when requested, otherwise the default
//     simplification pipeline unless disabled.
func NewDefaultGenerator(cfg Config) *Generator {
	g := NewGenerator()

	g.RegisterComponent("transformation-rules", func(p *Profile) error {
		ruleSet := rules.NewRuleSet()
		factory := rules.NewFactory(ruleSet,
			p.QubitAllocationManager(), p.ResultAllocationManager(), p.Logger())
		if err := factory.UsingConfiguration(cfg.Transform.Factory); err != nil {
			return err
		}
		ctx := rules.NewContext(
			p.QubitAllocationManager(), p.ResultAllocationManager(), p.Logger())
		p.PassManager().Add(passes.NewTransform(ruleSet, ctx, cfg.Transform, p.Logger()))
		return nil
	})

	g.RegisterComponent("pipeline", func(p *Profile) error {
		if cfg.Pipeline.PassPipeline != "" {
			parsed, err := passes.ParsePipeline(cfg.Pipeline.PassPipeline, passes.NewRegistry(p.Logger()))
			if err != nil {
				return err
			}
			p.PassManager().Add(parsed...)
			return nil
		}
		if cfg.Pipeline.AlwaysInline {
			p.PassManager().Add(passes.NewAlwaysInline(p.Logger()))
			return nil
		}
		if !cfg.Pipeline.DisableDefaultPipeline {
			p.PassManager().Add(passes.NewSimplify(p.Logger()))
		}
		return nil
	})

	return g
}

// Setup builds a profile, assembles its pipeline with the default
// generator, and returns it ready to run.
func Setup(cfg Config, opts ...Option) (*Profile, error) {
	p := New(opts...)
	if err := NewDefaultGenerator(cfg).SetupPipeline(p); err != nil {
		return nil, err
	}
	return p, nil
}

// IsConfigurationError reports whether the error is a configuration
// error. The driver layer uses this for its exit-status decisions.
func IsConfigurationError(err error) bool {
	var zerr *errz.Error
	if errors.As(err, &zerr) {
		return zerr.Kind == errz.ErrConfiguration
	}
	return false
}
