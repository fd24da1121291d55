package config

import (
	"fmt"
	"strings"

	"github.com/google/shlex"

	"github.com/anselrognlie/cue-convert/internal/transform"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
// Every problem is reported, not just the first.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateConversion()...)
	errors = append(errors, c.validateEncoder()...)
	errors = append(errors, c.validateVerification()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateConversion() ValidationErrors {
	var errors ValidationErrors

	if _, err := transform.Lookup(c.Conversion.Codec); err != nil {
		errors = append(errors, ValidationError{
			Field:   "conversion.codec",
			Message: fmt.Sprintf("unsupported codec %q", c.Conversion.Codec),
		})
	}

	if c.Conversion.Quality < MinQuality || c.Conversion.Quality > MaxQuality {
		errors = append(errors, ValidationError{
			Field:   "conversion.quality",
			Message: fmt.Sprintf("quality must be between %g and %g", MinQuality, MaxQuality),
		})
	}

	if strings.TrimSpace(c.Conversion.LockFile) == "" {
		errors = append(errors, ValidationError{
			Field:   "conversion.lock_file",
			Message: "lock_file is required",
		})
	}

	return errors
}

func (c *Config) validateEncoder() ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(c.Encoder.Binary) == "" {
		errors = append(errors, ValidationError{
			Field:   "encoder.binary",
			Message: "binary is required",
		})
	}

	if _, err := shlex.Split(c.Encoder.ExtraArgs); err != nil {
		errors = append(errors, ValidationError{
			Field:   "encoder.extra_args",
			Message: fmt.Sprintf("cannot split arguments: %v", err),
		})
	}

	return errors
}

func (c *Config) validateVerification() ValidationErrors {
	var errors ValidationErrors

	validMethods := map[string]bool{"none": true, "size": true, "sha256": true, "": true}
	if !validMethods[c.Verification.Method] {
		errors = append(errors, ValidationError{
			Field:   "verification.method",
			Message: "method must be 'none', 'size' or 'sha256'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
