package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/anselrognlie/cue-convert/internal/config"
	"github.com/anselrognlie/cue-convert/internal/cue"
	"github.com/anselrognlie/cue-convert/internal/transform"
)

var planCodec string

var planCmd = &cobra.Command{
	Use:   "plan <file.cue>",
	Short: "Show how a single CUE sheet would be rewritten",
	Long: `Plan parses one CUE sheet and prints its canonical form next to the
sheet convert would write for it.

The plan shows:
  - The source sheet in canonical form
  - The rewritten sheet for the target codec
  - Which media files would be encoded and which copied

Malformed lines are listed with their line numbers instead.

Example:
  cueconvert plan /music/rips/album/disc.cue`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planCodec, "codec", "",
		"Target codec (default from config, ogg)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(planOverrides())
	if err != nil {
		return err
	}

	var perrs cue.ParseErrors
	src, err := cue.ParseFile(args[0], &perrs)
	if err != nil {
		if errors.Is(err, cue.ErrInvalidSheet) {
			printParseErrors(args[0], perrs)
		}
		return err
	}

	profile, err := transform.Lookup(cfg.Conversion.Codec)
	if err != nil {
		return err
	}
	tgt, err := transform.Plan(src, profile.Codec)
	if err != nil {
		return fmt.Errorf("failed to plan %s: %w", args[0], err)
	}

	printHeader("Plan: %s", args[0])
	fmt.Fprintln(outputWriter)
	printSideBySide("Source", cue.Lines(src), "Target ("+string(profile.Codec)+")", cue.Lines(tgt))

	fmt.Fprintln(outputWriter)
	printSection("Media")
	for i, sf := range src.Files {
		tf := tgt.Files[i]
		action := "copy"
		if sf.Type != tf.Type {
			action = "encode"
		}
		fmt.Fprintf(outputWriter, "  %-6s %s -> %s\n", action, sf.Name, tf.Name)
	}
	return nil
}

func planOverrides() config.Overrides {
	return config.Overrides{Codec: planCodec}
}

func printParseErrors(path string, perrs cue.ParseErrors) {
	printHeader("Parse errors: %s", path)
	for _, pe := range perrs {
		fmt.Fprintf(outputWriter, "  %4d: %s\n", pe.Line, pe.Text)
	}
}

// printSideBySide renders two columns of lines, padding the left column
// by display width.
func printSideBySide(leftTitle string, left []string, rightTitle string, right []string) {
	width := runewidth.StringWidth(leftTitle)
	for _, l := range left {
		width = max(width, runewidth.StringWidth(l))
	}

	row := func(l, r string) {
		fmt.Fprintf(outputWriter, "%s | %s\n", runewidth.FillRight(l, width), r)
	}

	row(leftTitle, rightTitle)
	row(strings.Repeat("-", width), strings.Repeat("-", runewidth.StringWidth(rightTitle)))
	for i := 0; i < max(len(left), len(right)); i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		row(l, r)
	}
}

// printHeader prints a formatted header
func printHeader(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := runewidth.StringWidth(title) + 4
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
	fmt.Fprintf(outputWriter, "  %s\n", title)
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
}

// printSection prints a section header
func printSection(title string) {
	fmt.Fprintf(outputWriter, "%s\n", title)
	fmt.Fprintln(outputWriter, strings.Repeat("-", runewidth.StringWidth(title)))
}
