package report

import (
	"bytes"
	"html/template"
	"io"

	"github.com/tonescan/tonescan/internal/model"
)

// HTMLWriter outputs score tables as a self-contained HTML document.
// This format is designed for viewing results in a browser.
//
// Design decision: We use the standard html/template package because:
// 1. Contextual auto-escaping prevents injection from score values
// 2. The single-table layout does not need a component framework
// 3. It keeps the output a dependency-free static document
//
// Line text is inserted without re-escaping because it has already been
// through the sanitizer, which strips everything outside a small tag
// allow-list. Escaping it again would render the allowed markup inert.
type HTMLWriter struct {
	baseWriter

	// title is the document and page title.
	title string
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithTitle overrides the document title.
func WithTitle(title string) HTMLWriterOption {
	return func(w *HTMLWriter) {
		if title != "" {
			w.title = title
		}
	}
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{
		baseWriter: newBaseWriter(output),
		title:      "Sentiment Scores",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// tableClasses matches the DataTables styling conventions so the output
// drops into pages that already load that stylesheet.
const tableClasses = "cell-border compact hover order-column stripe"

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.6em; text-align: left; }
th { background: #f0f0f0; }
td.score { text-align: right; font-variant-numeric: tabular-nums; }
td.error { color: #b00020; }
tr:nth-child(even) { background: #fafafa; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table class="{{.TableClasses}}">
<thead>
<tr>
<th>#</th>
<th>text</th>
{{- range .Columns}}
<th title="{{.Scale.Description}}">{{.Label}}</th>
{{- end}}
</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr>
<td>{{.Index}}</td>
<td>{{.Text}}</td>
{{- range .Cells}}
<td class="{{if .IsError}}error{{else}}score{{end}}">{{.Display}}</td>
{{- end}}
</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

// htmlDocument is the template input.
type htmlDocument struct {
	Title        string
	TableClasses string
	Columns      []model.Column
	Rows         []htmlRow
}

// htmlRow is one rendered table row.
type htmlRow struct {
	Index int
	Text  template.HTML
	Cells []htmlCell
}

// htmlCell is one rendered score cell.
type htmlCell struct {
	Display string
	IsError bool
}

// Write renders the table as an HTML document.
func (w *HTMLWriter) Write(table *model.ResultTable) (int, error) {
	doc := htmlDocument{
		Title:        w.title,
		TableClasses: tableClasses,
		Columns:      table.Columns,
		Rows:         make([]htmlRow, 0, len(table.Rows)),
	}

	for _, row := range table.Rows {
		cells := make([]htmlCell, 0, len(table.Columns))
		for _, col := range table.Columns {
			cell := row.Cells[col.Name]
			cells = append(cells, htmlCell{
				Display: cell.String(),
				IsError: cell.IsError(),
			})
		}
		doc.Rows = append(doc.Rows, htmlRow{
			Index: row.Index,
			Text:  template.HTML(row.Text), //nolint:gosec // Text passed through the sanitizer upstream.
			Cells: cells,
		})
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, doc); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}
