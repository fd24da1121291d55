package report

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Summary renders the run totals as a table for the console.
func Summary(rep *Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Outcome", "Sheets"})

	tw.AppendRow(table.Row{"Transformed", strconv.Itoa(rep.TransformedCount)})
	tw.AppendRow(table.Row{"Failed", strconv.Itoa(rep.FailedCount)})
	tw.AppendRow(table.Row{"Skipped", strconv.Itoa(rep.SkippedCount)})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"Found", strconv.Itoa(rep.Found)})
	tw.AppendRow(table.Row{"Media encoded", strconv.Itoa(rep.Encoded)})
	tw.AppendRow(table.Row{"Bytes copied", humanize.Bytes(uint64(max(rep.BytesCopied, 0)))})
	tw.AppendRow(table.Row{"Elapsed", rep.Elapsed().Round(time.Millisecond).String()})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	if rep.RunID != "" {
		tw.SetCaption("run %s", rep.RunID)
	}
	return tw.Render()
}
