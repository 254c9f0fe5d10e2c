package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/qadapt-io/qadapt/errz"
)

var red = color.New(color.FgRed).SprintFunc()

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}

// friendly expands structured errors into their annotated form, including
// the source snippet when one is attached.
func friendly(err error) string {
	var zerr *errz.Error
	if errors.As(err, &zerr) {
		return zerr.FriendlyErrorMessage()
	}
	return err.Error()
}

func isTerminalIO() bool {
	stdin := os.Stdin.Fd()
	stdout := os.Stdout.Fd()
	inTerm := isatty.IsTerminal(stdin) || isatty.IsCygwinTerminal(stdin)
	outTerm := isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
	return inTerm && outTerm
}

func getOutputJSON(v interface{}) ([]byte, error) {
	if viper.GetBool("no-color") {
		return json.MarshalIndent(v, "", "  ")
	}
	return prettyjson.Marshal(v)
}
