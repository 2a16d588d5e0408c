package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-gltf/pkg/gltf"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if !cfg.Read.External {
		t.Error("expected external reads to be enabled by default")
	}
	if cfg.Write.BufferMode != "binary" {
		t.Errorf("expected buffer mode 'binary', got %s", cfg.Write.BufferMode)
	}
	if !cfg.Write.MergeBuffers {
		t.Error("expected merge_buffers to be true by default")
	}
	if cfg.Validation.Mode != "structure" {
		t.Errorf("expected validation mode 'structure', got %s", cfg.Validation.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	yamlContent := `
logging:
  level: "debug"
  format: "json"
  log_file: "gltftool.log"

read:
  external: false

write:
  buffer_mode: "external"
  merge_buffers: false
  indent: true

validation:
  mode: "content"
  extensions: ["EXT_vendor"]
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || cfg.Logging.LogFile != "gltftool.log" {
		t.Errorf("unexpected logging section %+v", cfg.Logging)
	}
	if cfg.Read.External {
		t.Error("expected external reads to be disabled")
	}
	if cfg.Write.BufferMode != "external" || cfg.Write.MergeBuffers || !cfg.Write.Indent {
		t.Errorf("unexpected write section %+v", cfg.Write)
	}
	if cfg.Validation.Mode != "content" || len(cfg.Validation.Extensions) != 1 {
		t.Errorf("unexpected validation section %+v", cfg.Validation)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":      "logging:\n  level: [unclosed\n",
		"type":        "read:\n  external: maybe\n",
		"unknown key": "graphics:\n  width: 800\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Write.BufferMode != "binary" {
		t.Errorf("defaults lost, buffer mode %s", cfg.Write.BufferMode)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/gltftool.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}
	if err := os.WriteFile(FileName, []byte("write:\n  indent: true\n"), 0o644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != FileName {
		t.Errorf("expected %s in current directory, got %q", FileName, path)
	}
}

func TestFlagsApply(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	err := fs.Parse([]string{"-debug", "-log", "out.log", "-validate", "none", "-mode", "embedded", "-indent"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg := Default()
	cfg.Write.MergeBuffers = false
	flags.apply(cfg)

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "out.log" {
		t.Errorf("unexpected logging section %+v", cfg.Logging)
	}
	if cfg.Validation.Mode != "none" {
		t.Errorf("expected validation none, got %s", cfg.Validation.Mode)
	}
	if cfg.Write.BufferMode != "embedded" || !cfg.Write.Indent {
		t.Errorf("unexpected write section %+v", cfg.Write)
	}
	if cfg.Write.MergeBuffers {
		t.Error("unset -merge flag must not change merge_buffers")
	}
}

func TestLoadPriority(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "custom.yaml")
	yamlContent := `
write:
  buffer_mode: "external"
  indent: true
validation:
  mode: "content"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(&Flags{ConfigPath: configPath, BufferMode: "embedded"})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Write.BufferMode != "embedded" {
		t.Errorf("expected buffer mode from flag, got %s", cfg.Write.BufferMode)
	}
	if !cfg.Write.Indent || cfg.Validation.Mode != "content" {
		t.Errorf("expected file values to survive, got %+v %+v", cfg.Write, cfg.Validation)
	}

	if _, err := Load(&Flags{ConfigPath: configPath, Validation: "strict"}); err == nil {
		t.Error("expected error for unknown validation mode")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	cfg.Validation.Extensions = []string{"EXT_vendor"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	loaded.Validation.Extensions = nil
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Validation.Extensions) != 1 || loaded.Validation.Extensions[0] != "EXT_vendor" {
		t.Errorf("extensions not saved: %v", loaded.Validation.Extensions)
	}
}

func TestCodecSettings(t *testing.T) {
	cfg := Default()
	cfg.Read.External = false
	cfg.Validation.Mode = "content"
	cfg.Validation.Extensions = []string{"EXT_vendor"}

	rs, err := cfg.ReadSettings(gltf.DirResolver("."), nil)
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if rs.Validation != gltf.ValidateContent {
		t.Errorf("expected content validation, got %v", rs.Validation)
	}
	if !rs.Registry.IsSupported("EXT_vendor") || gltf.DefaultRegistry.IsSupported("EXT_vendor") {
		t.Error("extension registry not extended in isolation")
	}
	if _, err := rs.Resolver("a.bin"); !errors.Is(err, gltf.ErrMissingResolver) {
		t.Errorf("expected disabled resolver, got %v", err)
	}

	ws, err := cfg.WriteSettings(nil)
	if err != nil {
		t.Fatalf("write settings: %v", err)
	}
	if ws.BufferMode != gltf.BufferBinary || !ws.MergeBuffers {
		t.Errorf("unexpected write settings %+v", ws)
	}

	cfg.Write.BufferMode = "zip"
	if _, err := cfg.WriteSettings(nil); err == nil {
		t.Error("expected error for unknown buffer mode")
	}
}
