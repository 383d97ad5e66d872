package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/rivo/uniseg"
	"github.com/robottwo/webjump/internal/webjump"
)

const maxColumnWidth = 60

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// table renders rows as left-aligned columns. Cells wider than
// maxColumnWidth are truncated; widths are measured in terminal cells.
type table struct {
	headers []string
	rows    [][]string
	styles  []lipgloss.Style
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) addRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = truncate.StringWithTail(cells[i], maxColumnWidth, "…")
		}
	}
	t.rows = append(t.rows, row)
}

// style sets the style of column i.
func (t *table) style(i int, s lipgloss.Style) *table {
	for len(t.styles) <= i {
		t.styles = append(t.styles, lipgloss.NewStyle())
	}
	t.styles[i] = s
	return t
}

func (t *table) render(w io.Writer) error {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = uniseg.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], uniseg.StringWidth(cell))
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string, style func(i int) lipgloss.Style) {
		var line strings.Builder
		for i, cell := range cells {
			if i > 0 {
				line.WriteString("  ")
			}
			pad := strings.Repeat(" ", widths[i]-uniseg.StringWidth(cell))
			line.WriteString(style(i).Render(cell) + pad)
		}
		sb.WriteString(strings.TrimRight(line.String(), " ") + "\n")
	}

	writeRow(t.headers, func(int) lipgloss.Style { return headerStyle })
	for _, row := range t.rows {
		writeRow(row, func(i int) lipgloss.Style {
			if i < len(t.styles) {
				return t.styles[i]
			}
			return lipgloss.NewStyle()
		})
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func definitionTable(defs []*webjump.Definition) *table {
	t := newTable("NAME", "ARGUMENT", "URL", "DESCRIPTION").style(0, nameStyle).style(3, dimStyle)
	for _, def := range defs {
		url := def.Template
		if url == "" {
			url = "(function)"
		}
		t.addRow(def.Key, def.Argument.String(), url, def.Description)
	}
	return t
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
