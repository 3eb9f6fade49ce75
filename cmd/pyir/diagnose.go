package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pyir/internal/lower"
)

// recoverBug turns a panic escaping the translator into a diagnostic
// instead of a raw stack trace: mustConst/mustName/mustVarname panic on
// an out-of-range table index, which means the input violated the
// frontend contract this package trusts rather than something the
// translator itself can recover from.
func recoverBug(errOut *error) {
	if r := recover(); r != nil {
		*errOut = fmt.Errorf("pyir: internal error: %v", r)
	}
}

func printTranslateError(useColor bool, err *lower.Error) {
	label := "error"
	c := color.New(color.FgRed, color.Bold)
	if err.Severity() == lower.SevInternal {
		label = "bug"
		c = color.New(color.FgMagenta, color.Bold)
	}
	if useColor {
		fmt.Fprintf(os.Stderr, "%s: %s\n", c.Sprint(label), err.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", label, err.Error())
}

func resolveColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stderr)
	}
}
