package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path. The format is
// taken from the extension (YAML when there is none) and ${VAR}
// references in path-like fields are expanded from the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType(configType(configPath))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadOptional behaves like Load but returns the defaults when configPath
// does not exist.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return Load(configPath)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)
	return cfg, nil
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

func substituteEnvVars(cfg *Config) {
	cfg.Conversion.ReportPath = expandEnvVar(cfg.Conversion.ReportPath)
	cfg.Conversion.FilterPath = expandEnvVar(cfg.Conversion.FilterPath)
	cfg.Encoder.Binary = expandEnvVar(cfg.Encoder.Binary)
	cfg.Encoder.ExtraArgs = expandEnvVar(cfg.Encoder.ExtraArgs)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
// Unknown variables are left as written.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return match
	})
}

// Overrides carries command-line values that take precedence over the
// file. Zero values leave the file setting alone; pointer fields are set
// only when the flag was given.
type Overrides struct {
	LogLevel    string
	LogFormat   string
	Codec       string
	Quality     *float64
	Overwrite   bool
	DryRun      bool
	Quiet       bool
	ReportPath  string
	FilterPath  string
	Verify      string
	EncoderPath string
}

// ApplyOverrides applies CLI flag overrides to the configuration.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.Codec != "" {
		c.Conversion.Codec = o.Codec
	}
	if o.Quality != nil {
		c.Conversion.Quality = *o.Quality
	}
	if o.Overwrite {
		c.Conversion.Overwrite = true
	}
	if o.DryRun {
		c.Conversion.DryRun = true
	}
	if o.Quiet {
		c.Conversion.Quiet = true
	}
	if o.ReportPath != "" {
		c.Conversion.ReportPath = o.ReportPath
	}
	if o.FilterPath != "" {
		c.Conversion.FilterPath = o.FilterPath
	}
	if o.Verify != "" {
		c.Verification.Method = o.Verify
	}
	if o.EncoderPath != "" {
		c.Encoder.Binary = o.EncoderPath
	}
}
