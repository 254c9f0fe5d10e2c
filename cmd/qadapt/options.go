package main

import (
	"os"

	"github.com/spf13/viper"

	"github.com/qadapt-io/qadapt"
	"github.com/qadapt-io/qadapt/logger"
	"github.com/qadapt-io/qadapt/passes"
	"github.com/qadapt-io/qadapt/profile"
	"github.com/qadapt-io/qadapt/rules"
)

// getLowerOptions translates the flag values into lowering options.
func getLowerOptions() []qadapt.Option {
	factory := rules.DefaultConfig()
	factory.EmitQubitRelease = viper.GetBool("emit-release")
	factory.FoldConstantBranches = viper.GetBool("fold-branches")
	factory.DisableReferenceCounting = !viper.GetBool("keep-refcounts")

	transform := passes.DefaultTransformConfig()
	transform.SimplifyPriorTransform = viper.GetBool("simplify-prior-transform")
	transform.Factory = factory

	opts := []qadapt.Option{
		qadapt.WithTransformConfig(transform),
		qadapt.WithPipelineConfig(profile.PipelineConfig{
			PassPipeline:           viper.GetString("pass-pipeline"),
			AlwaysInline:           viper.GetBool("always-inline"),
			DisableDefaultPipeline: viper.GetBool("disable-default-pipeline"),
		}),
	}
	if n := viper.GetInt64("max-qubits"); n > 0 {
		opts = append(opts, qadapt.WithMaxQubits(n))
	}
	if n := viper.GetInt64("max-results"); n > 0 {
		opts = append(opts, qadapt.WithMaxResults(n))
	}
	if viper.GetBool("verbose") {
		opts = append(opts, qadapt.WithLogger(logger.NewZerolog(os.Stderr)))
	}
	return opts
}
