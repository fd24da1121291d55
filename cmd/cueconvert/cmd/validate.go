package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anselrognlie/cue-convert/internal/config"
	"github.com/anselrognlie/cue-convert/internal/convert"
	"github.com/anselrognlie/cue-convert/internal/encoder"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and check the encoder",
	Long: `Validate checks the configuration file and the environment convert
depends on.

Checks performed:
  - Configuration syntax and field values
  - Target codec is supported
  - Encoder binary can be found on PATH
  - Filter file can be read, when configured

Example:
  cueconvert validate --config cueconvert.yaml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	fmt.Fprintf(outputWriter, "\n=== Configuration Validation ===\n")
	fmt.Fprintf(outputWriter, "Config file: %s\n", configFile)

	cfg, err := loadConfig(config.Overrides{})
	if err != nil {
		fmt.Fprintf(outputWriter, "❌ %v\n", err)
		return errors.New("configuration is invalid")
	}
	fmt.Fprintf(outputWriter, "✅ Configuration is valid (codec %s, quality %g)\n",
		cfg.Conversion.Codec, cfg.Conversion.Quality)

	hasErrors := false

	enc := encoder.NewOggEnc(encoder.WithBinary(cfg.Encoder.Binary))
	if path, err := enc.LookPath(); err != nil {
		fmt.Fprintf(outputWriter, "❌ Encoder: %v\n", err)
		hasErrors = true
	} else {
		fmt.Fprintf(outputWriter, "✅ Encoder: %s (%s)\n", path, enc.Binary())
	}

	if cfg.Conversion.FilterPath != "" {
		if f, err := convert.LoadFilter(cfg.Conversion.FilterPath); err != nil {
			fmt.Fprintf(outputWriter, "❌ Filter: %v\n", err)
			hasErrors = true
		} else {
			fmt.Fprintf(outputWriter, "✅ Filter: %d pattern(s)\n", f.Len())
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	fmt.Fprintln(outputWriter, "=== Validation Complete ===")
	return nil
}
