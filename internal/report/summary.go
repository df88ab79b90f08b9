package report

import (
	"autorecruiter/internal/jobs"
	"autorecruiter/pkg/textutil"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// PrintSummary renders how many listings every search found.
func PrintSummary(w io.Writer, results jobs.Results, global jobs.Collection) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Board", "Search", "Listings"})
	for _, result := range results {
		t.AppendRow(table.Row{
			textutil.TitleCase(result.Board),
			result.Title,
			len(result.Collection),
		})
	}
	t.AppendFooter(table.Row{"", "Unique", len(global)})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
