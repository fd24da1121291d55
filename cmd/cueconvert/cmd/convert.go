package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anselrognlie/cue-convert/internal/config"
	"github.com/anselrognlie/cue-convert/internal/convert"
	"github.com/anselrognlie/cue-convert/internal/lock"
)

// Conversion flags, shared by convert and dry-run
var (
	convertOverwrite bool
	convertQuiet     bool
	convertReport    string
	convertFilter    string
	convertQuality   float64
	convertCodec     string
	convertVerify    string
	convertEncoder   string
	convertForce     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <source> <target>",
	Short: "Mirror a tree of CUE sheets and convert its audio",
	Long: `Convert walks the source tree and, for every .cue file, writes a
rewritten sheet to the same relative path under the target tree. Media the
sheet references is encoded when the target codec accepts it and copied
otherwise.

Existing target sheets are skipped unless --overwrite is given. The command
exits non-zero when any sheet failed.

Example:
  cueconvert convert /music/rips /music/ogg --quality 5 --report report.txt`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	addConversionFlags(convertCmd)

	convertCmd.Flags().StringVar(&convertVerify, "verify", "",
		"Verify copied media (none, size, sha256)")
	convertCmd.Flags().StringVar(&convertEncoder, "encoder", "",
		"Path to the encoder binary")
	convertCmd.Flags().BoolVar(&convertForce, "force", false,
		"Run even if another run holds the target lock (use with caution)")

	rootCmd.AddCommand(convertCmd)
}

// addConversionFlags registers the flags convert and dry-run share.
func addConversionFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&convertOverwrite, "overwrite", "w", false,
		"Replace target sheets that already exist")
	cmd.Flags().BoolVarP(&convertQuiet, "quiet", "Q", false,
		"Do not print progress or the report to the console")
	cmd.Flags().StringVarP(&convertReport, "report", "r", "",
		"Also write the report to this file")
	cmd.Flags().StringVarP(&convertFilter, "filter", "f", "",
		"File of regular expressions; matching sheets are skipped")
	cmd.Flags().Float64VarP(&convertQuality, "quality", "q", config.DefaultQuality,
		"Encoder quality (-1 to 10)")
	cmd.Flags().StringVar(&convertCodec, "codec", "",
		"Target codec (default from config, ogg)")
}

// conversionOverrides collects the conversion flags the user actually set.
func conversionOverrides(cmd *cobra.Command) config.Overrides {
	o := config.Overrides{
		Codec:       convertCodec,
		Overwrite:   convertOverwrite,
		Quiet:       convertQuiet,
		ReportPath:  convertReport,
		FilterPath:  convertFilter,
		Verify:      convertVerify,
		EncoderPath: convertEncoder,
	}
	if cmd.Flags().Changed("quality") {
		q := convertQuality
		o.Quality = &q
	}
	return o
}

func runConvert(cmd *cobra.Command, args []string) error {
	return runConversion(cmd, args, conversionOverrides(cmd), convertForce)
}

func runConversion(cmd *cobra.Command, args []string, overrides config.Overrides, force bool) error {
	source, target := args[0], args[1]

	cfg, err := loadConfig(overrides)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if force {
		log.Warnw("Skipping target lock (--force flag used)", "target", target)
	}

	conv, err := convert.New(cfg, source, target,
		convert.WithConverterLogger(log),
		convert.WithStdout(outputWriter),
		convert.WithForce(force),
	)
	if err != nil {
		return err
	}

	// Setup context with signal handling
	ctx, cancel := shutdownContext(commandContext(cmd), func(os.Signal) {
		log.Warn("Received shutdown signal - finishing current sheet...")
	})
	defer cancel()

	rep, err := conv.Run(ctx)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return fmt.Errorf("%w (use --force to override)", err)
		}
		if errors.Is(err, context.Canceled) {
			log.Warn("Conversion cancelled by user")
		}
		return err
	}

	if rep.HasFailures() {
		return fmt.Errorf("%d of %d cue sheet(s) failed", rep.FailedCount, rep.Found)
	}
	return nil
}

// commandContext returns the command's context, or Background when it
// was run without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
