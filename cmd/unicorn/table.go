package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderSummary renders one row per processed file.
func renderSummary(rows []fileOutcome) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Source", "Item", "Output", "Status", "Blob"})
	for _, r := range rows {
		if r.err != nil {
			tw.AppendRow(table.Row{r.source, "", "", "failed", r.err.Error()})
			continue
		}
		status := "updated"
		if r.res.Created {
			status = "created"
		}
		blob := "unchanged"
		if r.res.BlobChanged {
			blob = "changed"
		}
		tw.AppendRow(table.Row{r.source, r.res.ItemPath, r.res.OutputPath, status, blob})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 60},
	})
	return tw.Render()
}
