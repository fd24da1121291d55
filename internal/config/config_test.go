package config

import (
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Conversion.Codec != "ogg" {
		t.Errorf("expected default codec 'ogg', got %s", cfg.Conversion.Codec)
	}
	if cfg.Conversion.Quality != 3 {
		t.Errorf("expected default quality 3, got %v", cfg.Conversion.Quality)
	}
	if cfg.Conversion.Overwrite || cfg.Conversion.DryRun || cfg.Conversion.Quiet {
		t.Error("expected overwrite, dry_run and quiet to default to false")
	}
	if cfg.Conversion.LockFile != ".cueconvert.lock" {
		t.Errorf("expected default lock file '.cueconvert.lock', got %s", cfg.Conversion.LockFile)
	}
	if cfg.Encoder.Binary != "oggenc" {
		t.Errorf("expected default encoder 'oggenc', got %s", cfg.Encoder.Binary)
	}
	if cfg.Encoder.RawFlag != "-r" {
		t.Errorf("expected default raw flag '-r', got %s", cfg.Encoder.RawFlag)
	}
	if cfg.Verification.Method != "none" {
		t.Errorf("expected default verification 'none', got %s", cfg.Verification.Method)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("expected default log output 'stderr', got %s", cfg.Logging.Output)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestSampleYAML(t *testing.T) {
	data, err := Sample("yaml")
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "# ") {
		t.Error("expected sample to start with a comment header")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample is not valid yaml: %v", err)
	}
	if cfg.Encoder.Binary != "oggenc" {
		t.Errorf("expected encoder binary 'oggenc' in sample, got %q", cfg.Encoder.Binary)
	}
	if !strings.Contains(string(data), "report_path:") {
		t.Error("expected snake_case keys in yaml sample")
	}
}

func TestSampleTOML(t *testing.T) {
	data, err := Sample("TOML")
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample is not valid toml: %v", err)
	}
	if cfg.Conversion.Quality != 3 {
		t.Errorf("expected quality 3 in sample, got %v", cfg.Conversion.Quality)
	}
	if !strings.Contains(string(data), "[conversion]") {
		t.Error("expected [conversion] table in toml sample")
	}
}

func TestSampleUnknownFormat(t *testing.T) {
	if _, err := Sample("ini"); err == nil {
		t.Error("expected error for unknown sample format")
	}
}
