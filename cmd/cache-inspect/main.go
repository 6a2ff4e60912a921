// Package main provides a read-only view of the duration cache.
//
// Usage:
//
//	cache-inspect ~/library/.duration-cache.json
//	CACHE_PATH=~/library/.duration-cache.json cache-inspect
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bookbinderapp/bookbinder/internal/render"
	"github.com/bookbinderapp/bookbinder/internal/store"
)

func main() {
	path := os.Getenv("CACHE_PATH")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		log.Fatal("Usage: cache-inspect <cache-file> (or set CACHE_PATH)")
	}

	// No prober: inspection must never trigger probing.
	st, err := store.Open(path, nil, nil)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}

	entries := st.Entries()
	fmt.Println("=== Duration Cache ===")
	fmt.Printf("File: %s\n", path)
	fmt.Printf("Entries: %d\n\n", len(entries))

	if len(entries) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Path", "Seconds", "Duration"})

	var total int64
	for _, e := range entries {
		tw.AppendRow(table.Row{e.Path, e.Seconds, render.HMS(e.Seconds)})
		total += e.Seconds
	}
	tw.AppendFooter(table.Row{"", total, render.HMS(total)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	fmt.Println(tw.Render())
}
