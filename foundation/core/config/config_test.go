// File: config_test.go
// Title: Configuration Tests
// Description: Tests for loading, typed access, env overrides, defaults
//              and validation.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial test implementation

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
)

const sampleTOML = `
[log]
level = "debug"
format = "json"

[parser]
max_input_bytes = 4096
decode_strings = false

[loader]
debounce = "150ms"
extensions = [".quiz", ".qz"]
`

const sampleYAML = `
log:
  level: info
parser:
  max_input_bytes: 2048
  decode_strings: true
loader:
  debounce: 1s
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	cfg, err := Load(writeFile(t, "quizc.toml", sampleTOML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Format() != FormatTOML {
		t.Errorf("Format() = %v, want toml", cfg.Format())
	}
	if got := cfg.GetString("log.level"); got != "debug" {
		t.Errorf("log.level = %q, want debug", got)
	}
	if got := cfg.GetInt("parser.max_input_bytes"); got != 4096 {
		t.Errorf("parser.max_input_bytes = %d, want 4096", got)
	}
	if cfg.GetBool("parser.decode_strings", true) {
		t.Error("parser.decode_strings should be false")
	}
	if got := cfg.GetDuration("loader.debounce"); got != 150*time.Millisecond {
		t.Errorf("loader.debounce = %v, want 150ms", got)
	}
	if got := cfg.GetStringSlice("loader.extensions"); !reflect.DeepEqual(got, []string{".quiz", ".qz"}) {
		t.Errorf("loader.extensions = %v", got)
	}
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "quizc.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Format() != FormatYAML {
		t.Errorf("Format() = %v, want yaml", cfg.Format())
	}
	if got := cfg.GetInt("parser.max_input_bytes"); got != 2048 {
		t.Errorf("parser.max_input_bytes = %d, want 2048", got)
	}
	if !cfg.GetBool("parser.decode_strings") {
		t.Error("parser.decode_strings should be true")
	}
	if got := cfg.GetDuration("loader.debounce"); got != time.Second {
		t.Errorf("loader.debounce = %v, want 1s", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); !qzerror.HasCode(err, qzerror.CodeInvalidInput) {
		t.Errorf("empty path error = %v, want INVALID_INPUT", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !qzerror.HasCode(err, qzerror.CodeNotFound) {
		t.Errorf("missing file error = %v, want NOT_FOUND", err)
	}
	bad := writeFile(t, "bad.toml", "[log\nlevel = ")
	if _, err := Load(bad); !qzerror.HasCode(err, qzerror.CodeInvalidConfig) {
		t.Errorf("malformed file error = %v, want INVALID_CONFIG", err)
	}
}

func TestDefaultsSitBeneathFile(t *testing.T) {
	cfg, err := LoadWithOptions(writeFile(t, "quizc.toml", sampleTOML), LoadOptions{
		Format: FormatAuto,
		Defaults: map[string]interface{}{
			"log.level":     "warn",
			"catalog.path":  "./data/quizzes.db",
			"output.format": "text",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := cfg.GetString("log.level"); got != "debug" {
		t.Errorf("file value should win over default, got %q", got)
	}
	if got := cfg.GetString("catalog.path"); got != "./data/quizzes.db" {
		t.Errorf("catalog.path = %q", got)
	}
	if got := cfg.GetString("log.format"); got != "json" {
		t.Errorf("sibling key lost when merging defaults: %q", got)
	}
}

func TestEnvOverride(t *testing.T) {
	cfg, err := LoadWithOptions(writeFile(t, "quizc.toml", sampleTOML), LoadOptions{EnvPrefix: "QUIZC"})
	if err != nil {
		t.Fatal(err)
	}

	if got := cfg.EnvKey("parser.max_input_bytes"); got != "QUIZC_PARSER_MAX_INPUT_BYTES" {
		t.Errorf("EnvKey() = %q", got)
	}

	t.Setenv("QUIZC_PARSER_MAX_INPUT_BYTES", "99")
	t.Setenv("QUIZC_LOG_LEVEL", "error")
	t.Setenv("QUIZC_OUTPUT_FORMAT", "yaml")

	if got := cfg.GetInt("parser.max_input_bytes"); got != 99 {
		t.Errorf("env override = %d, want 99", got)
	}
	if got := cfg.GetString("log.level"); got != "error" {
		t.Errorf("env override = %q, want error", got)
	}
	if !cfg.Has("output.format") {
		t.Error("Has() should see env-only keys")
	}
}

func TestSetAndKeys(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Set("catalog.path", "/tmp/q.db")

	if got := cfg.GetString("catalog.path"); got != "/tmp/q.db" {
		t.Errorf("catalog.path = %q", got)
	}
	keys := cfg.Keys()
	want := []string{
		"catalog.path", "loader.debounce", "loader.extensions",
		"log.format", "log.level", "parser.decode_strings", "parser.max_input_bytes",
	}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}
	if cfg.Has("nope.missing") {
		t.Error("Has() reported a missing key")
	}
}

func TestGettersFallBackToDefault(t *testing.T) {
	cfg := NewDefault("", nil)

	if got := cfg.GetString("x", "d"); got != "d" {
		t.Errorf("GetString default = %q", got)
	}
	if got := cfg.GetInt("x", 7); got != 7 {
		t.Errorf("GetInt default = %d", got)
	}
	if got := cfg.GetBool("x", true); !got {
		t.Error("GetBool default lost")
	}
	if got := cfg.GetDuration("x", time.Minute); got != time.Minute {
		t.Errorf("GetDuration default = %v", got)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "quizc.yml"), []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover([]string{filepath.Join(dir, "nope"), dir}, []string{"quizc"}, LoadOptions{Format: FormatAuto})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(cfg.FilePath(), "quizc.yml") {
		t.Errorf("FilePath() = %q", cfg.FilePath())
	}

	empty, err := Discover([]string{t.TempDir()}, []string{"quizc"}, LoadOptions{
		Defaults: map[string]interface{}{"log.level": "warn"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if empty.FilePath() != "" || empty.GetString("log.level") != "warn" {
		t.Errorf("expected defaults-only config, got %q / %q", empty.FilePath(), empty.GetString("log.level"))
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadFromString(`
[log]
level = "chatty"
[parser]
max_input_bytes = 0
[loader]
debounce = "soon"
`, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}

	rules := ValidationRules{
		"log.level":              {Type: "string", OneOf: []string{"trace", "debug", "info", "warn", "error"}},
		"parser.max_input_bytes": {Type: "int", Min: 1},
		"loader.debounce":        {Type: "duration"},
		"catalog.path":           {Required: true},
	}

	err = cfg.Validate(rules)
	if !qzerror.HasCode(err, qzerror.CodeInvalidConfig) {
		t.Fatalf("Validate() = %v, want INVALID_CONFIG", err)
	}
	for _, want := range []string{"catalog.path is required", "log.level must be one of", "parser.max_input_bytes must be at least 1", "loader.debounce must be a duration"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q missing %q", err.Error(), want)
		}
	}

	cfg.Set("log.level", "info")
	cfg.Set("parser.max_input_bytes", 10)
	cfg.Set("loader.debounce", "1s")
	cfg.Set("catalog.path", "q.db")
	if err := cfg.Validate(rules); err != nil {
		t.Errorf("Validate() after fix = %v", err)
	}
}
