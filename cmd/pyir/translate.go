package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pyir/internal/codeobj"
	"pyir/internal/config"
	"pyir/internal/diagbag"
	"pyir/internal/irprint"
	"pyir/internal/irvalidate"
	"pyir/internal/lower"
	"pyir/internal/trace"
)

var translateCmd = &cobra.Command{
	Use:   "translate <input.json|input.msgpack> [more inputs...]",
	Short: "Translate one or more decoded code objects into IR",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTranslate,
}

func init() {
	translateCmd.Flags().Bool("validate", false, "check the translated CFG's structural invariants")
	translateCmd.Flags().Bool("batch", false, "translate multiple inputs concurrently")
	translateCmd.Flags().Bool("debug", false, "force [translate].debug on regardless of pyir.toml")
	translateCmd.Flags().String("trace", "", "trace output path, or - for stderr (overrides pyir.toml)")
	translateCmd.Flags().String("trace-level", "", "trace level: object|opcode (overrides pyir.toml)")
	translateCmd.Flags().String("config", "", "path to pyir.toml (default: search upward from cwd)")
}

func runTranslate(cmd *cobra.Command, args []string) (returnErr error) {
	defer recoverBug(&returnErr)

	cfg, err := loadTranslateConfig(cmd)
	if err != nil {
		return err
	}

	validate, _ := cmd.Flags().GetBool("validate")
	batch, _ := cmd.Flags().GetBool("batch")
	useColor := resolveColor(cmd)

	if batch && len(args) > 1 {
		return runTranslateBatch(cmd, args, cfg, validate, useColor)
	}

	for _, path := range args {
		if err := translateOne(cmd, path, cfg, validate, useColor); err != nil {
			return err
		}
	}
	return nil
}

// runTranslateBatch translates independent inputs concurrently:
// translation is a pure function per code object (spec.md §5), so
// nothing about running several in parallel changes any single result.
func runTranslateBatch(cmd *cobra.Command, paths []string, cfg config.Config, validate, useColor bool) error {
	g, _ := errgroup.WithContext(context.Background())
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return translateOne(cmd, path, cfg, validate, useColor)
		})
	}
	return g.Wait()
}

func translateOne(cmd *cobra.Command, path string, cfg config.Config, validate, useColor bool) error {
	code, err := decodeCodeFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	tracer, closeTracer, err := newTracerFromConfig(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeTracer()

	maxDiag := cfg.Translate.MaxDiagnostics
	if v, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); v > 0 {
		maxDiag = v
	}
	bag := diagbag.NewBag(maxDiag)

	obj, terr := lower.Translate(code, bag, tracer, cfg.Translate.Debug)
	if terr != nil {
		printTranslateError(useColor, terr)
		return fmt.Errorf("%s: translation failed", path)
	}

	if validate {
		if verr := irvalidate.Validate(obj); verr != nil {
			return fmt.Errorf("%s: invalid CFG: %w", path, verr)
		}
	}

	for _, d := range bag.Items() {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", path, d.Severity, d.Message)
	}

	return irprint.DumpObject(cmd.OutOrStdout(), obj)
}

func loadTranslateConfig(cmd *cobra.Command) (config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")
	var cfg config.Config
	var err error
	if explicit != "" {
		cfg, err = config.Load(explicit)
	} else {
		cfg, err = config.LoadOrDefault(".")
	}
	if err != nil {
		return config.Config{}, err
	}

	if force, _ := cmd.Flags().GetBool("debug"); force {
		cfg.Translate.Debug = true
	}
	if out, _ := cmd.Flags().GetString("trace"); out != "" {
		cfg.Translate.TraceOutput = out
	}
	return cfg, nil
}

func newTracerFromConfig(cmd *cobra.Command, cfg config.Config) (trace.Tracer, func(), error) {
	levelStr, _ := cmd.Flags().GetString("trace-level")
	if levelStr == "" && !cfg.Translate.Debug {
		return trace.Nop, func() {}, nil
	}
	if levelStr == "" {
		levelStr = "opcode"
	}
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, err
	}
	format, err := trace.ParseFormat(cfg.Translate.TraceFormat)
	if err != nil {
		return nil, nil, err
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Format:     format,
		OutputPath: cfg.Translate.TraceOutput,
	})
	if err != nil {
		return nil, nil, err
	}
	return tracer, func() { tracer.Close() }, nil
}

func decodeCodeFile(path string) (*codeobj.Code, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var code *codeobj.Code
	if isMsgpackPath(path) {
		code, err = codeobj.Decode(data)
	} else {
		code, err = codeobj.DecodeJSON(data)
	}
	if err != nil {
		return nil, err
	}
	if err := code.ValidateWidths(); err != nil {
		return nil, err
	}
	return code, nil
}

func isMsgpackPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		return true
	default:
		return false
	}
}
