package main

import (
	"bytes"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pyir/internal/config"
	"pyir/internal/diagbag"
	"pyir/internal/irprint"
	"pyir/internal/lower"
	"pyir/internal/trace"
	"pyir/internal/ui"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <input.json|input.msgpack>",
	Short: "Translate an input and print its IR",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().Bool("interactive", false, "page through the dump in a terminal UI")
}

func runDump(cmd *cobra.Command, args []string) (returnErr error) {
	defer recoverBug(&returnErr)

	path := args[0]
	code, err := decodeCodeFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		return err
	}

	bag := diagbag.NewBag(cfg.Translate.MaxDiagnostics)
	obj, terr := lower.Translate(code, bag, trace.Nop, cfg.Translate.Debug)
	if terr != nil {
		printTranslateError(resolveColor(cmd), terr)
		return fmt.Errorf("%s: translation failed", path)
	}

	var buf bytes.Buffer
	if err := irprint.DumpObject(&buf, obj); err != nil {
		return err
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if !isTerminal(os.Stdout) {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	p := tea.NewProgram(ui.NewDumpModel(path, buf.String()), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
