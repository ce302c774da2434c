package report

import (
	"fmt"
	"io"

	"github.com/tonescan/tonescan/internal/model"
)

// Writer defines the interface for result output.
// Implementations render a ResultTable in a specific format.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or buffers
// with the same API.
type Writer interface {
	// Write renders the table to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(table *model.ResultTable) (int, error)
}

// NewWriter creates a Writer for the named format writing to output.
// Supported formats: text, html, markdown, json.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch format {
	case "text":
		return NewSimpleWriter(output), nil
	case "html":
		return NewHTMLWriter(output), nil
	case "markdown":
		return NewMarkdownWriter(output), nil
	case "json":
		return NewJSONWriter(output, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("unknown report format: %q", format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
