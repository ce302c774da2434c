package report

import (
	"encoding/json"
	"io"

	"github.com/tonescan/tonescan/internal/model"
)

// JSONWriter outputs score tables in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter:   newBaseWriter(output),
		indent:       false,
		indentPrefix: "",
		indentString: "",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the score table in JSON format.
func (w *JSONWriter) Write(table *model.ResultTable) (int, error) {
	return w.writeJSON(newJSONTable(table))
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v interface{}) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// jsonTable is the JSON projection of a score table.
//
// Design decision: We project rather than marshal model.ResultTable
// directly because the JSON surface should stay stable even when the
// internal representation changes, and because engine cells read better
// as a flat object keyed by engine name.
type jsonTable struct {
	// Columns describes each scoring engine in output order.
	Columns []jsonColumn `json:"columns"`

	// Rows holds one entry per input line, in input order.
	Rows []jsonRow `json:"rows"`
}

// jsonColumn describes one scoring engine column.
type jsonColumn struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Description string  `json:"description,omitempty"`
}

// jsonRow is one scored line.
type jsonRow struct {
	// Index is the 1-based input line number.
	Index int `json:"index"`

	// Text is the sanitized line content.
	Text string `json:"text"`

	// Scores maps engine name to its result for this line.
	Scores map[string]model.ScoreResult `json:"scores"`
}

// newJSONTable converts a result table into its JSON projection.
func newJSONTable(table *model.ResultTable) *jsonTable {
	out := &jsonTable{
		Columns: make([]jsonColumn, 0, len(table.Columns)),
		Rows:    make([]jsonRow, 0, len(table.Rows)),
	}

	for _, col := range table.Columns {
		out.Columns = append(out.Columns, jsonColumn{
			Name:        col.Name,
			Label:       col.Label,
			Min:         col.Scale.Min,
			Max:         col.Scale.Max,
			Description: col.Scale.Description,
		})
	}

	for _, row := range table.Rows {
		scores := make(map[string]model.ScoreResult, len(row.Cells))
		for name, cell := range row.Cells {
			scores[name] = cell
		}
		out.Rows = append(out.Rows, jsonRow{
			Index:  row.Index,
			Text:   row.Text,
			Scores: scores,
		})
	}

	return out
}
