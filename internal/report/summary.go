package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteSummary renders one table row per file.
func WriteSummary(w io.Writer, r *Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"File", "Header", "Violations", "Status"})

	for _, f := range r.Files {
		header := "-"
		if f.HeaderRow > 0 {
			header = fmt.Sprintf("%d", f.HeaderRow)
		}
		t.AppendRow(table.Row{f.Path, header, len(f.Violations), f.Status()})
	}
	t.AppendFooter(table.Row{"Total", "", r.Summary.Violations, fmt.Sprintf("%d files", r.Summary.Files)})
	t.Render()
}
