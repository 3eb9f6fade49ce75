// Package config loads the optional pyir.toml configuration file that
// controls translation-time behavior: debug tracing, diagnostic caps,
// and where trace output goes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const defaultMaxDiagnostics = 100

// Config mirrors the [translate] table of pyir.toml.
type Config struct {
	Translate TranslateConfig `toml:"translate"`
}

type TranslateConfig struct {
	Debug          bool   `toml:"debug"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	TraceOutput    string `toml:"trace_output"`
	TraceFormat    string `toml:"trace_format"`
}

// Default returns the configuration used when no pyir.toml is found.
func Default() Config {
	return Config{Translate: TranslateConfig{
		Debug:          false,
		MaxDiagnostics: defaultMaxDiagnostics,
		TraceOutput:    "-",
		TraceFormat:    "text",
	}}
}

// Find walks upward from startDir looking for pyir.toml, the same way
// a project root marker is located. It returns ok=false, not an error,
// when none is found anywhere up to the filesystem root.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "pyir.toml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(statErr) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load decodes path, filling any field the file leaves undefined with
// its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: parse TOML: %w", path, err)
	}
	if meta.IsDefined("translate") {
		if !meta.IsDefined("translate", "max_diagnostics") || cfg.Translate.MaxDiagnostics <= 0 {
			cfg.Translate.MaxDiagnostics = defaultMaxDiagnostics
		}
		if !meta.IsDefined("translate", "trace_output") || cfg.Translate.TraceOutput == "" {
			cfg.Translate.TraceOutput = "-"
		}
		if !meta.IsDefined("translate", "trace_format") || cfg.Translate.TraceFormat == "" {
			cfg.Translate.TraceFormat = "text"
		}
	}
	if cfg.Translate.TraceFormat != "text" && cfg.Translate.TraceFormat != "ndjson" {
		return Config{}, fmt.Errorf("%s: [translate].trace_format must be \"text\" or \"ndjson\", got %q", path, cfg.Translate.TraceFormat)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load when path exists, and returns
// Default() unmodified when it does not.
func LoadOrDefault(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
