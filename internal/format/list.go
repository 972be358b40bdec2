// Package format renders an entry list for non-interactive output.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// Options controls WriteEntries.
type Options struct {
	// Format is table, plain, or json. Empty means table.
	Format string
	// Width caps the table width. Zero means detect from OutFile, then COLUMNS, then 80.
	Width   int
	OutFile *os.File
}

type listPayload struct {
	Target  string   `json:"target"`
	Count   int      `json:"count"`
	Entries []string `json:"entries"`
}

// WriteEntries writes entries for target to w in the requested format.
func WriteEntries(w io.Writer, target string, entries []string, opts Options) error {
	switch strings.ToLower(opts.Format) {
	case "", "table":
		return writeEntriesTable(w, target, entries, determineWidth(opts.OutFile, opts.Width))
	case "plain":
		return writeEntriesPlain(w, target, entries)
	case "json":
		return writeEntriesJSON(w, target, entries)
	default:
		return fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

func writeEntriesPlain(w io.Writer, target string, entries []string) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "%s is empty\n", target)
		return err
	}
	for i, entry := range entries {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, entry); err != nil {
			return err
		}
	}
	return nil
}

func writeEntriesJSON(w io.Writer, target string, entries []string) error {
	if entries == nil {
		entries = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(listPayload{Target: target, Count: len(entries), Entries: entries})
}

func writeEntriesTable(w io.Writer, target string, entries []string, width int) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true
	tw.SetTitle(target)

	indexWidth := len(strconv.Itoa(len(entries)))
	// Border, padding and separators take seven columns.
	entryWidth := width - indexWidth - 7
	if entryWidth < 10 {
		entryWidth = 10
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: entryWidth},
	})
	tw.AppendHeader(table.Row{"#", "Entry"})

	for i, entry := range entries {
		tw.AppendRow(table.Row{i + 1, entry})
	}
	if len(entries) == 0 {
		tw.AppendRow(table.Row{"-", "(empty)"})
	}

	_ = tw.Render()
	return nil
}

func determineWidth(out *os.File, width int) int {
	if width > 0 {
		return width
	}
	if out != nil {
		if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if colsStr := os.Getenv("COLUMNS"); colsStr != "" {
		if v, err := strconv.Atoi(colsStr); err == nil && v > 0 {
			return v
		}
	}
	return 80
}
