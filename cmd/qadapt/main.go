package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qadapt [file]",
		Short: "Lower quantum circuit descriptions to a static resource profile",
		Long: "Qadapt reads a semantic circuit model (JSON) from a file or stdin,\n" +
			"lowers it to statically addressed qubits and results, and prints the\n" +
			"lowered listing with its resource requirements.",
		Args: cobra.MaximumNArgs(1),
		Run:  runHandler,
	}

	flags := rootCmd.Flags()
	flags.Bool("stdin", false, "Read the model from stdin")
	flags.Bool("simplify-prior-transform", true, "Run simplification before the lowering rules")
	flags.String("pass-pipeline", "", "Explicit pass pipeline, e.g. \"unroll(16),always-inline\"")
	flags.Bool("always-inline", false, "Inline all calls before lowering")
	flags.Bool("disable-default-pipeline", false, "Skip the default simplification pipeline")
	flags.Int64("max-qubits", 0, "Maximum static qubits (0 = unbounded)")
	flags.Int64("max-results", 0, "Maximum static result slots (0 = unbounded)")
	flags.Bool("emit-release", false, "Keep qubit release markers in the lowered output")
	flags.Bool("fold-branches", true, "Fold constant result comparisons")
	flags.Bool("keep-refcounts", false, "Keep reference counting instructions")
	flags.StringP("output", "o", "text", "Output format (text, json)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.BoolP("verbose", "v", false, "Log pass diagnostics to stderr")
	viper.BindPFlags(flags)
	viper.BindEnv("no-color", "NO_COLOR")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s (commit %s, built %s)\n", version, commit, date)
		},
	}
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
