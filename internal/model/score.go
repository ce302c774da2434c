package model

import "strconv"

// Scale describes the numeric range and meaning of an engine's output.
// Carrying the scale with every column keeps results self-describing;
// a consumer never needs external documentation to interpret a value.
type Scale struct {
	// Min is the lowest value the engine can produce.
	Min float64

	// Max is the highest value the engine can produce.
	Max float64

	// Description explains the meaning of the endpoints, for example
	// "-1.0 (negative emotion) to +1.0 (positive emotion)".
	Description string
}

// Column identifies one enabled engine in a ResultTable.
// Columns appear in engine registration order and that order is stable
// across every row of a table.
type Column struct {
	// Name is the engine's short identifier (e.g. "vader"). It is the
	// key into ResultRow.Cells.
	Name string `json:"name"`

	// Label is the human-readable column header, including the scale
	// description (e.g. "vader: -1.0 (negative emotion) to +1.0 (positive emotion)").
	Label string `json:"label"`

	// Scale is the engine's documented output range.
	Scale Scale `json:"-"`
}

// ScoreResult is the outcome of one engine scoring one line: either a
// numeric value within the engine's scale, or a failure with a
// human-readable cause. Exactly one of the two is set.
//
// Design decision: We use a small value type with an explicit error slot
// rather than (float64, error) tuples in the data model because a failure
// is a first-class, renderable outcome here. A remote engine timing out
// must appear inside the table cell, not abort the request.
type ScoreResult struct {
	// Value is the engine's score. Only meaningful when Err is empty.
	// A score of exactly zero is a real result, so Value always
	// serializes; Err alone marks a failure cell.
	Value float64 `json:"value"`

	// Err holds the failure cause when the engine could not produce a
	// score. Empty string means success.
	Err string `json:"error,omitempty"`
}

// NewScore creates a successful ScoreResult.
func NewScore(value float64) ScoreResult {
	return ScoreResult{Value: value}
}

// NewScoreError creates a failure ScoreResult from an error.
// A nil error yields a generic cause so a failure cell is never blank.
func NewScoreError(err error) ScoreResult {
	if err == nil {
		return ScoreResult{Err: "unknown error"}
	}
	return ScoreResult{Err: err.Error()}
}

// IsError reports whether this result is a failure.
func (r ScoreResult) IsError() bool {
	return r.Err != ""
}

// String renders the result for display: values with three decimal places
// (matching the rounding used everywhere in reports), failures as
// "ERROR: <cause>".
func (r ScoreResult) String() string {
	if r.IsError() {
		return "ERROR: " + r.Err
	}
	return strconv.FormatFloat(r.Value, 'f', 3, 64)
}
