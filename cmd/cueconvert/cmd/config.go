package cmd

import (
	"github.com/spf13/cobra"

	"github.com/anselrognlie/cue-convert/internal/config"
)

var sampleFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a sample configuration file",
	Long: `Sample prints the default configuration in YAML or TOML so it can be
saved and edited.

Example:
  cueconvert config sample > cueconvert.yaml
  cueconvert config sample --format toml > cueconvert.toml`,
	Args: cobra.NoArgs,
	RunE: runConfigSample,
}

func init() {
	configSampleCmd.Flags().StringVar(&sampleFormat, "format", "yaml",
		"Sample format (yaml, toml)")

	configCmd.AddCommand(configSampleCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigSample(cmd *cobra.Command, args []string) error {
	out, err := config.Sample(sampleFormat)
	if err != nil {
		return err
	}
	_, err = outputWriter.Write(out)
	return err
}
