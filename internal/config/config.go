// Package config provides configuration structures and loading for cueconvert.
package config

// Config represents the complete application configuration.
type Config struct {
	Conversion   ConversionConfig   `yaml:"conversion" toml:"conversion" mapstructure:"conversion"`
	Encoder      EncoderConfig      `yaml:"encoder" toml:"encoder" mapstructure:"encoder"`
	Verification VerificationConfig `yaml:"verification" toml:"verification" mapstructure:"verification"`
	Logging      LoggingConfig      `yaml:"logging" toml:"logging" mapstructure:"logging"`
}

// ConversionConfig controls how sheets are mirrored.
type ConversionConfig struct {
	Codec      string  `yaml:"codec" toml:"codec" mapstructure:"codec"`       // target codec, e.g. "ogg"
	Quality    float64 `yaml:"quality" toml:"quality" mapstructure:"quality"` // -1 to 10
	Overwrite  bool    `yaml:"overwrite" toml:"overwrite" mapstructure:"overwrite"`
	DryRun     bool    `yaml:"dry_run" toml:"dry_run" mapstructure:"dry_run"`
	Quiet      bool    `yaml:"quiet" toml:"quiet" mapstructure:"quiet"`
	ReportPath string  `yaml:"report_path" toml:"report_path" mapstructure:"report_path"`
	FilterPath string  `yaml:"filter_path" toml:"filter_path" mapstructure:"filter_path"` // file of regular expressions
	LockFile   string  `yaml:"lock_file" toml:"lock_file" mapstructure:"lock_file"`       // relative to the target root
}

// EncoderConfig describes the external encoder.
type EncoderConfig struct {
	Binary    string `yaml:"binary" toml:"binary" mapstructure:"binary"`
	ExtraArgs string `yaml:"extra_args" toml:"extra_args" mapstructure:"extra_args"` // shell words
	RawFlag   string `yaml:"raw_flag" toml:"raw_flag" mapstructure:"raw_flag"`
}

// VerificationConfig controls checking of copied media.
type VerificationConfig struct {
	Method string `yaml:"method" toml:"method" mapstructure:"method"` // "none", "size" or "sha256"
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" mapstructure:"level"`    // debug, info, warn, error
	Format string `yaml:"format" toml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" toml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// Quality bounds accepted by the encoder.
const (
	MinQuality     = -1.0
	MaxQuality     = 10.0
	DefaultQuality = 3.0
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Conversion: ConversionConfig{
			Codec:    "ogg",
			Quality:  DefaultQuality,
			LockFile: ".cueconvert.lock",
		},
		Encoder: EncoderConfig{
			Binary:  "oggenc",
			RawFlag: "-r",
		},
		Verification: VerificationConfig{
			Method: "none",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
