package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anselrognlie/cue-convert/internal/config"
	"github.com/anselrognlie/cue-convert/internal/convert"
	"github.com/anselrognlie/cue-convert/internal/lineio"
	"github.com/anselrognlie/cue-convert/internal/lock"
)

var (
	purgeDryRun bool
	purgeSource string
	purgeForce  bool
)

var purgeCmd = &cobra.Command{
	Use:   "purge <target>",
	Short: "Delete a mirrored target tree",
	Long: `Purge removes a target tree produced by convert, deleting files before
the directories that hold them and the target root last. Every removed path
is printed.

WARNING: This permanently deletes files. Use --dry-run first to verify.

Example:
  cueconvert purge /music/ogg --source /music/rips --dry-run`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runPurge,
}

func init() {
	purgeCmd.Flags().BoolVar(&purgeDryRun, "dry-run", false,
		"List what would be deleted without deleting it")
	purgeCmd.Flags().StringVar(&purgeSource, "source", "",
		"Source tree that must survive; purge refuses to touch it")
	purgeCmd.Flags().BoolVar(&purgeForce, "force", false,
		"Purge even if another run holds the target lock (use with caution)")

	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(config.Overrides{})
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts := convert.PurgeOptions{
		DryRun: purgeDryRun,
		Output: lineio.NewStreamWriter(outputWriter),
		Logger: log,
	}
	if purgeSource != "" {
		opts.Protect = append(opts.Protect, purgeSource)
	}
	if !purgeForce {
		opts.LockFile = cfg.Conversion.LockFile
	} else {
		log.Warnw("Skipping target lock (--force flag used)", "target", args[0])
	}

	ctx, cancel := shutdownContext(commandContext(cmd), func(os.Signal) {
		log.Warn("Received shutdown signal - stopping purge...")
	})
	defer cancel()

	res, err := convert.Purge(ctx, args[0], opts)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return fmt.Errorf("%w (use --force to override)", err)
		}
		return err
	}

	verb := "Removed"
	if res.DryRun {
		verb = "Would remove"
	}
	fmt.Fprintf(outputWriter, "\n%s %d files and %d directories\n", verb, res.Files, res.Directories)
	return nil
}
