package profile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qadapt-io/qadapt/errz"
	"github.com/qadapt-io/qadapt/ir"
	"github.com/qadapt-io/qadapt/op"
)

func TestDefaultGeneratorComponents(t *testing.T) {
	g := NewDefaultGenerator(DefaultGeneratorConfig())
	require.Equal(t, []string{"transformation-rules", "pipeline"}, g.ComponentNames())
}

func TestDefaultGeneratorSchedulesDefaultPipeline(t *testing.T) {
	p := New()
	require.NoError(t, NewDefaultGenerator(DefaultGeneratorConfig()).SetupPipeline(p))
	require.Equal(t, []string{"transformation-rules", "simplify"}, p.PassManager().Names())
}

func TestDisabledDefaultPipelineContributesNoPasses(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Pipeline.DisableDefaultPipeline = true

	p := New()
	require.NoError(t, NewDefaultGenerator(cfg).SetupPipeline(p))
	require.Equal(t, []string{"transformation-rules"}, p.PassManager().Names())
}

func TestAlwaysInlineScheduled(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Pipeline.AlwaysInline = true

	p := New()
	require.NoError(t, NewDefaultGenerator(cfg).SetupPipeline(p))
	require.Equal(t, []string{"transformation-rules", "always-inline"}, p.PassManager().Names())
}

func TestExplicitPipelineOverridesBuiltins(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Pipeline.PassPipeline = "unroll(8),always-inline"
	cfg.Pipeline.AlwaysInline = false

	p := New()
	require.NoError(t, NewDefaultGenerator(cfg).SetupPipeline(p))
	require.Equal(t, []string{"transformation-rules", "simplify", "always-inline"},
		p.PassManager().Names())
}

func TestInvalidPipelineSpecFailsBeforeRunning(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Pipeline.PassPipeline = "bogus-pass"

	_, err := Setup(cfg)
	require.Error(t, err)
	require.True(t, IsConfigurationError(err))
	require.Contains(t, err.Error(), `failed to set pipeline component "pipeline" up`)
	require.Contains(t, err.Error(), `unknown pass "bogus-pass"`)
}

func TestContradictoryRuleConfigFailsSetup(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Transform.Factory.UseStaticQubitAllocation = false

	_, err := Setup(cfg)
	require.Error(t, err)
	require.True(t, IsConfigurationError(err))
	require.Contains(t, err.Error(), `failed to set pipeline component "transformation-rules" up`)
}

func TestSetupFailureTouchesNoModule(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Pipeline.PassPipeline = "nonsense("

	mod := ir.NewModule("m")
	fn := mod.AddFunction("main")
	fn.Emit(op.QubitAlloc)

	_, err := Setup(cfg)
	require.Error(t, err)
	require.Equal(t, op.QubitAlloc, fn.Instructions[0].Op)
	require.Equal(t, 1, len(fn.Instructions))
}

func TestCustomComponentOrdering(t *testing.T) {
	var order []string
	g := NewGenerator()
	g.RegisterComponent("first", func(p *Profile) error {
		order = append(order, "first")
		return nil
	})
	g.RegisterComponent("second", func(p *Profile) error {
		order = append(order, "second")
		return nil
	})
	require.NoError(t, g.SetupPipeline(New()))
	require.Equal(t, []string{"first", "second"}, order)
}

func TestIsConfigurationError(t *testing.T) {
	require.True(t, IsConfigurationError(errz.ConfigErrorf("bad")))
	require.False(t, IsConfigurationError(errz.InternalErrorf("bad")))
	require.False(t, IsConfigurationError(nil))
}

func TestGeneratorSchedulesTransformPass(t *testing.T) {
	p := New()
	require.NoError(t, NewDefaultGenerator(DefaultGeneratorConfig()).SetupPipeline(p))
	require.Equal(t, 2, p.PassManager().Len())
}
