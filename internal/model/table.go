package model

// ResultRow holds every enabled engine's verdict for a single input line.
//
// Invariant: Cells contains exactly one entry per enabled engine; an engine
// that failed contributes a failure ScoreResult, it is never silently
// omitted. The row's Text is the sanitized form of the line, which is the
// only form that ever reaches engines or rendering surfaces.
type ResultRow struct {
	// Index is the 1-based display position of the line in the input.
	Index int `json:"index"`

	// Text is the sanitized line text.
	Text string `json:"text"`

	// Cells maps engine name to that engine's result for this line.
	Cells map[string]ScoreResult `json:"scores"`
}

// NewResultRow creates a ResultRow with an initialized cell map.
// Index is the 0-based line position; the stored display index is 1-based.
func NewResultRow(index int, text string) ResultRow {
	return ResultRow{
		Index: index + 1,
		Text:  text,
		Cells: make(map[string]ScoreResult),
	}
}

// Cell returns the result for the named engine and whether it exists.
func (r ResultRow) Cell(engine string) (ScoreResult, bool) {
	res, ok := r.Cells[engine]
	return res, ok
}

// ResultTable is the ordered tabular outcome of one submission.
//
// Invariants: len(Rows) equals the input line count exactly; row order
// equals input line order regardless of scoring completion order; every
// row carries one cell per column. Rows are never deduplicated, even when
// two input lines are identical.
type ResultTable struct {
	// Columns lists the enabled engines in registration order.
	// This order is the display order for every renderer.
	Columns []Column `json:"columns"`

	// Rows holds one entry per input line, in input order.
	Rows []ResultRow `json:"rows"`
}

// NewResultTable creates a table for the given columns with capacity for
// rowCount rows. Rows are appended (or index-assigned) by the aggregator.
func NewResultTable(columns []Column, rowCount int) *ResultTable {
	return &ResultTable{
		Columns: columns,
		Rows:    make([]ResultRow, rowCount),
	}
}

// RowCount returns the number of rows in the table.
func (t *ResultTable) RowCount() int {
	return len(t.Rows)
}

// ColumnNames returns the engine names in display order.
func (t *ResultTable) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether the table carries a column with the given
// engine name.
func (t *ResultTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// FailureCount returns the total number of failure cells in the table.
// Useful for logging and report summaries.
func (t *ResultTable) FailureCount() int {
	var n int
	for _, row := range t.Rows {
		for _, cell := range row.Cells {
			if cell.IsError() {
				n++
			}
		}
	}
	return n
}
