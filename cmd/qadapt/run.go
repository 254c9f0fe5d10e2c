package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qadapt-io/qadapt"
	"github.com/qadapt-io/qadapt/dis"
	"github.com/qadapt-io/qadapt/interop"
)

func runHandler(cmd *cobra.Command, args []string) {
	processGlobalFlags()

	model, err := readModel(cmd, args)
	if err != nil {
		fatal(err)
	}
	mod, err := model.BuildModule()
	if err != nil {
		fatal(friendly(err))
	}

	result, err := qadapt.Lower(mod, getLowerOptions()...)
	if err != nil {
		fatal(friendly(err))
	}

	switch viper.GetString("output") {
	case "", "text":
		dis.Fprint(os.Stdout, result.Module)
		fmt.Printf("\nrequired qubits:  %d\nrequired results: %d\n",
			result.Metadata.RequiredQubits, result.Metadata.RequiredResults)
	case "json":
		output, err := getOutputJSON(result.Metadata)
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(output))
	default:
		fatal(fmt.Sprintf("unknown output format: %s", viper.GetString("output")))
	}
}

// readModel loads the semantic model from the file argument or stdin.
func readModel(cmd *cobra.Command, args []string) (*interop.SemanticModel, error) {
	stdinSet := viper.GetBool("stdin")
	fileProvided := len(args) > 0
	if stdinSet && fileProvided {
		return nil, fmt.Errorf("multiple input sources specified")
	}
	if fileProvided {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return interop.Decode(f)
	}
	if stdinSet || !isTerminalIO() {
		return interop.Decode(os.Stdin)
	}
	return nil, fmt.Errorf("no input: pass a model file or use --stdin")
}

func processGlobalFlags() {
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
}
