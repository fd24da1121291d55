package cmd

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/anselrognlie/cue-convert/internal/transform"
)

var codecsCmd = &cobra.Command{
	Use:   "codecs",
	Short: "List supported target codecs",
	Long: `Codecs lists every target codec convert can produce, the file type and
extension it writes, and which source file types are eligible for it.

A file is only encoded when its type is eligible and every track it holds
is an AUDIO track; everything else is copied unchanged.

Example:
  cueconvert codecs`,
	Args: cobra.NoArgs,
	Run:  runCodecs,
}

func init() {
	rootCmd.AddCommand(codecsCmd)
}

func runCodecs(cmd *cobra.Command, args []string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(outputWriter)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Codec", "File type", "Extension", "Eligible sources"})

	for _, p := range transform.Codecs() {
		eligible := make([]string, len(p.Eligible))
		for i, t := range p.Eligible {
			eligible[i] = t.String()
		}
		tw.AppendRow(table.Row{p.Codec, p.FileType, p.Extension, strings.Join(eligible, ", ")})
	}
	tw.Render()
}
