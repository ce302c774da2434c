package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tonescan/tonescan/internal/model"
)

// SimpleWriter outputs human-readable text tables for terminal display.
//
// Design decision: We use plain text with ASCII column alignment rather
// than ANSI colors because it works in all terminals and pipes cleanly
// to files and other tools.
type SimpleWriter struct {
	baseWriter

	// maxTextWidth truncates the text column so one long line does not
	// blow up the whole table. Zero means no truncation.
	maxTextWidth int
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithMaxTextWidth caps the rendered width of the text column.
func WithMaxTextWidth(width int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if width > 0 {
			w.maxTextWidth = width
		}
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter:   newBaseWriter(output),
		maxTextWidth: 60,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the table with aligned columns.
func (w *SimpleWriter) Write(table *model.ResultTable) (int, error) {
	headers := make([]string, 0, len(table.Columns)+2)
	headers = append(headers, "#", "text")
	for _, col := range table.Columns {
		headers = append(headers, col.Label)
	}

	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]string, 0, len(headers))
		cells = append(cells, strconv.Itoa(row.Index), w.truncate(row.Text))
		for _, col := range table.Columns {
			cells = append(cells, row.Cells[col.Name].String())
		}
		rows = append(rows, cells)
	}

	widths := columnWidths(headers, rows)

	var sb strings.Builder
	writeRow(&sb, headers, widths)
	writeSeparator(&sb, widths)
	for _, cells := range rows {
		writeRow(&sb, cells, widths)
	}

	if failed := table.FailureCount(); failed > 0 {
		sb.WriteString(fmt.Sprintf("\n%d score(s) could not be computed; see ERROR cells above.\n", failed))
	}

	return w.output.Write([]byte(sb.String()))
}

// truncate shortens text to the configured width, marking the cut.
func (w *SimpleWriter) truncate(text string) string {
	if w.maxTextWidth <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= w.maxTextWidth {
		return text
	}
	return string(runes[:w.maxTextWidth-3]) + "..."
}

// columnWidths returns the display width of each column.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, cells := range rows {
		for i, c := range cells {
			if n := len([]rune(c)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

// writeRow writes one padded table row.
func writeRow(sb *strings.Builder, cells []string, widths []int) {
	for i, c := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(c)
		sb.WriteString(strings.Repeat(" ", widths[i]-len([]rune(c))))
	}
	sb.WriteString("\n")
}

// writeSeparator writes the header underline.
func writeSeparator(sb *strings.Builder, widths []int) {
	for i, w := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(strings.Repeat("-", w))
	}
	sb.WriteString("\n")
}
