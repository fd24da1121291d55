package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/anselrognlie/cue-convert/internal/config"
	"github.com/anselrognlie/cue-convert/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

const defaultConfigFile = "cueconvert.yaml"

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

var rootCmd = &cobra.Command{
	Use:   "cueconvert",
	Short: "Mirror CUE sheet trees and convert their audio",
	Long: `cueconvert walks a directory tree of CUE sheets and mirrors it into a
target tree. Every sheet is rewritten so that eligible audio files point at
a converted copy, the referenced media is copied or encoded alongside, and a
report lists what was transformed, what failed and what was skipped.

Features:
  - Resilient CUE parsing that reports every malformed line
  - Codec eligibility rules (raw BINARY and WAV audio become Ogg Vorbis)
  - Skip or overwrite existing targets
  - Regular expression filters and dry runs
  - Optional verification of copied media (size or SHA256)`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file (optional when left at the default)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// loadConfig reads the config file, applies overrides on top of it and
// validates the result. The default config file may be absent; an
// explicitly named one must exist.
func loadConfig(o config.Overrides) (*config.Config, error) {
	configFile := GetConfigFile()

	var (
		cfg *config.Config
		err error
	)
	if configFile == defaultConfigFile {
		cfg, err = config.LoadOptional(configFile)
	} else {
		cfg, err = config.Load(configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	o.LogLevel = logLevel
	o.LogFormat = logFormat
	cfg.ApplyOverrides(o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger initializes the logger from cfg
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
