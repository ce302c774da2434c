package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/tonescan/tonescan/internal/model"
)

// MarkdownWriter outputs score tables in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the score table in Markdown format.
func (w *MarkdownWriter) Write(table *model.ResultTable) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, table)
	w.writeScores(md, table)
	w.writeScales(md, table)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and a short summary line.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, table *model.ResultTable) {
	md.H1("Sentiment Scores")
	md.PlainText("")
	md.PlainTextf("Scored %d line(s) with %d engine(s).",
		table.RowCount(), len(table.Columns))

	if failed := table.FailureCount(); failed > 0 {
		md.PlainText("")
		md.Warningf("%d score(s) could not be computed; see ERROR cells below.", failed)
	}
	md.PlainText("")
}

// writeScores writes the per-line score table.
func (w *MarkdownWriter) writeScores(md *markdown.Markdown, table *model.ResultTable) {
	header := make([]string, 0, len(table.Columns)+2)
	header = append(header, "#", "Text")
	for _, col := range table.Columns {
		header = append(header, col.Label)
	}

	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]string, 0, len(header))
		cells = append(cells, strconv.Itoa(row.Index), row.Text)
		for _, col := range table.Columns {
			cells = append(cells, row.Cells[col.Name].String())
		}
		rows = append(rows, cells)
	}

	md.H2("Scores")
	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeScales documents the range and meaning of each engine column.
func (w *MarkdownWriter) writeScales(md *markdown.Markdown, table *model.ResultTable) {
	rows := make([][]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		rows = append(rows, []string{
			col.Label,
			formatScale(col.Scale),
			col.Scale.Description,
		})
	}

	md.H2("Scales")
	md.Table(markdown.TableSet{
		Header: []string{"Engine", "Range", "Meaning"},
		Rows:   rows,
	})
}

// formatScale renders a scale as "[min, max]".
func formatScale(s model.Scale) string {
	return fmt.Sprintf("[%s, %s]",
		strconv.FormatFloat(s.Min, 'f', -1, 64),
		strconv.FormatFloat(s.Max, 'f', -1, 64))
}
