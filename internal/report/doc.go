// Package report renders a ResultTable for display.
//
// The scoring core is agnostic to presentation: it hands over an ordered
// sequence of rows with a stable named column set, and a Writer turns
// that into a text table, an HTML table, GitHub-flavored Markdown, or
// JSON. Failure cells render inline as "ERROR: <cause>" next to the
// successful cells of the same row.
//
// Design decision: Writers consume the table through one interface so the
// pipeline never knows which format is in use, and new formats are added
// by implementing Writer rather than touching the core.
package report
