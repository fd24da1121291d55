package cmd

import (
	"github.com/spf13/cobra"
)

var dryrunCmd = &cobra.Command{
	Use:   "dry-run <source> <target>",
	Short: "Report what convert would do without writing anything",
	Long: `Dry-run parses and plans every sheet under the source tree and prints
the report convert would produce. No directories, sheets or media are written
and the target lock is not taken.

Example:
  cueconvert dry-run /music/rips /music/ogg --filter skip.txt`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runDryRun,
}

func init() {
	addConversionFlags(dryrunCmd)
	rootCmd.AddCommand(dryrunCmd)
}

func runDryRun(cmd *cobra.Command, args []string) error {
	overrides := conversionOverrides(cmd)
	overrides.DryRun = true
	return runConversion(cmd, args, overrides, false)
}
