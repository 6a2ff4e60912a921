package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bookbinderapp/bookbinder/internal/binder"
	"github.com/bookbinderapp/bookbinder/internal/render"
)

// summaryTable renders the per-book summary printed after a run.
func summaryTable(result *binder.RunResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Book", "Chapters", "Tracks", "Duration"})

	var totalTracks int
	var totalSeconds int64
	for _, b := range result.Books {
		tw.AppendRow(table.Row{b.Name, b.Chapters, b.Tracks, render.HMS(b.DurationSeconds)})
		totalTracks += b.Tracks
		totalSeconds += b.DurationSeconds
	}
	tw.AppendFooter(table.Row{"", "", totalTracks, render.HMS(totalSeconds)})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
