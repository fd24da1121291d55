package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Conversion.Quality = 10
	cfg.Verification.Method = "size"

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestQualityBounds(t *testing.T) {
	tests := []struct {
		quality float64
		valid   bool
	}{
		{-1, true},
		{0, true},
		{3, true},
		{10, true},
		{-1.5, false},
		{10.1, false},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Conversion.Quality = tt.quality
		err := cfg.Validate()
		if tt.valid && err != nil {
			t.Errorf("quality %v: expected valid, got %v", tt.quality, err)
		}
		if !tt.valid {
			if err == nil {
				t.Errorf("quality %v: expected validation error", tt.quality)
			} else if !strings.Contains(err.Error(), "conversion.quality") {
				t.Errorf("quality %v: expected error about conversion.quality, got: %v", tt.quality, err)
			}
		}
	}
}

func TestUnsupportedCodec(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Conversion.Codec = "flac"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for unsupported codec")
	}
	if !strings.Contains(err.Error(), "conversion.codec") {
		t.Errorf("expected error about conversion.codec, got: %v", err)
	}
}

func TestEncoderValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Encoder.Binary = "  "
	cfg.Encoder.ExtraArgs = `--comment "unterminated`

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors for encoder")
	}
	if !strings.Contains(err.Error(), "encoder.binary") {
		t.Errorf("expected error about encoder.binary, got: %v", err)
	}
	if !strings.Contains(err.Error(), "encoder.extra_args") {
		t.Errorf("expected error about encoder.extra_args, got: %v", err)
	}
}

func TestInvalidVerificationMethod(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Verification.Method = "count"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for invalid verification method")
	}
	if !strings.Contains(err.Error(), "verification.method") {
		t.Errorf("expected error about verification.method, got: %v", err)
	}
}

func TestMultipleErrors(t *testing.T) {
	cfg := &Config{
		Conversion: ConversionConfig{Quality: 42},
		Logging:    LoggingConfig{Level: "verbose", Format: "xml"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected multiple validation errors")
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	fields := make(map[string]bool)
	for _, v := range verrs {
		fields[v.Field] = true
	}
	for _, want := range []string{
		"conversion.codec",
		"conversion.quality",
		"conversion.lock_file",
		"encoder.binary",
		"logging.level",
		"logging.format",
	} {
		if !fields[want] {
			t.Errorf("expected error about %s, got: %v", want, err)
		}
	}

	if !strings.HasPrefix(err.Error(), "validation failed:") {
		t.Errorf("unexpected error format: %v", err)
	}
}

func TestValidationErrorsEmpty(t *testing.T) {
	if ValidationErrors(nil).Error() != "" {
		t.Error("expected empty message for no errors")
	}
}
