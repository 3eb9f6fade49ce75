package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.Translate.Debug {
		t.Fatalf("expected Debug to default to false")
	}
	if cfg.Translate.MaxDiagnostics != defaultMaxDiagnostics {
		t.Fatalf("MaxDiagnostics = %d, want %d", cfg.Translate.MaxDiagnostics, defaultMaxDiagnostics)
	}
	if cfg.Translate.TraceOutput != "-" || cfg.Translate.TraceFormat != "text" {
		t.Fatalf("unexpected defaults: %+v", cfg.Translate)
	}
}

func TestFindLocatesFileInStartDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyir.toml")
	if err := os.WriteFile(path, []byte("[translate]\ndebug = true\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	got, ok, err := Find(dir)
	if err != nil || !ok {
		t.Fatalf("Find() = %q, %v, %v", got, ok, err)
	}
	if got != path {
		t.Fatalf("Find() = %q, want %q", got, path)
	}
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "pyir.toml"), []byte(""), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find() from nested dir = %v, %v", ok, err)
	}
}

func TestFindReturnsNotOkWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Find(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false when no pyir.toml exists up to the filesystem root")
	}
}

func TestLoadFillsUnsetFieldsWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyir.toml")
	if err := os.WriteFile(path, []byte("[translate]\ndebug = true\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Translate.Debug {
		t.Fatalf("expected debug = true from the file")
	}
	if cfg.Translate.MaxDiagnostics != defaultMaxDiagnostics {
		t.Fatalf("unset max_diagnostics should default, got %d", cfg.Translate.MaxDiagnostics)
	}
	if cfg.Translate.TraceFormat != "text" {
		t.Fatalf("unset trace_format should default to text, got %q", cfg.Translate.TraceFormat)
	}
}

func TestLoadRejectsInvalidTraceFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyir.toml")
	if err := os.WriteFile(path, []byte("[translate]\ntrace_format = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an unsupported trace_format")
	}
}

func TestLoadOrDefaultReturnsDefaultWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOrDefault(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("LoadOrDefault() = %+v, want Default()", cfg)
	}
}
