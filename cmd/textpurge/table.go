package main

import (
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// column describes one table column. A zero MaxWidth leaves the column
// unbounded; longer cells are cut and end with an ellipsis.
type column struct {
	Header   string
	Align    columnAlignment
	MaxWidth int
}

func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i, col := range columns {
			cell := ""
			if i < len(row) {
				cell = truncate(row[i], col.MaxWidth)
			}
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, col := range columns {
		align := text.AlignLeft
		if col.Align == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func truncate(value string, maxWidth int) string {
	if maxWidth <= 0 || utf8.RuneCountInString(value) <= maxWidth {
		return value
	}
	if maxWidth == 1 {
		return "…"
	}
	return text.Trim(value, maxWidth-1) + "…"
}
