// Command pyir translates decoded Python 3.8 bytecode into a register/SSA
// intermediate representation.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pyir/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pyir",
	Short: "Python bytecode to register/SSA IR translator",
	Long:  `pyir translates decoded CPython 3.8 code objects into a CFG of typed SSA basic blocks.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "override [translate].max_diagnostics")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
