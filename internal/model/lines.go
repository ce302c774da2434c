package model

import "strings"

// SplitLines splits a submission into its lines.
//
// The rule: lines are delimited by "\n"; a preceding "\r" belongs to the
// delimiter and is stripped; a single trailing newline terminates the last
// line rather than opening an empty one. Interior empty lines are real
// lines and are preserved; they are sanitized and scored like any other.
//
// So "a\nb\n" is two lines, "a\n\nb" is three, and "" is zero lines.
func SplitLines(raw string) []string {
	if raw == "" {
		return nil
	}

	// Drop a single terminating newline so it does not manufacture an
	// empty final line.
	raw = strings.TrimSuffix(raw, "\n")
	if raw == "" {
		// The input was exactly "\n": one empty line.
		return []string{""}
	}

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// CountLines returns the number of lines SplitLines would produce without
// allocating the slice. The validator uses this to measure oversized
// submissions cheaply before rejecting them.
func CountLines(raw string) int {
	if raw == "" {
		return 0
	}
	n := strings.Count(raw, "\n") + 1
	if strings.HasSuffix(raw, "\n") {
		n--
	}
	return n
}
