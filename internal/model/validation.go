package model

import "fmt"

// RejectReason identifies why a submission was rejected before any
// scoring work began.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons. The String() method provides human-readable
// output when needed.
type RejectReason int

const (
	// ReasonVerificationFailed means the human-verification collaborator
	// did not confirm the submitter. Treated identically to any other
	// validation rejection: nothing is processed.
	ReasonVerificationFailed RejectReason = iota

	// ReasonTooManyLines means the submission exceeded the configured
	// line-count ceiling.
	ReasonTooManyLines

	// ReasonTooLarge means the submission exceeded the configured
	// total byte-size ceiling.
	ReasonTooLarge
)

// String returns a stable identifier for the rejection reason.
func (r RejectReason) String() string {
	switch r {
	case ReasonVerificationFailed:
		return "verification-failed"
	case ReasonTooManyLines:
		return "too-many-lines"
	case ReasonTooLarge:
		return "too-large"
	default:
		return "unknown"
	}
}

// ValidationError is a request-level rejection. It is terminal for the
// whole submission: no sanitization or scoring happens after it.
//
// It carries the measured offending value and the configured ceiling so
// callers can render a precise message ("60 lines, maximum is 51") without
// re-measuring the input. Extract it with errors.As.
type ValidationError struct {
	// Reason classifies the rejection.
	Reason RejectReason

	// Actual is the measured value that breached the limit: the true
	// line count for ReasonTooManyLines, the true byte length for
	// ReasonTooLarge, zero for ReasonVerificationFailed.
	Actual int

	// Max is the configured ceiling that was breached. Zero for
	// ReasonVerificationFailed.
	Max int
}

// Error implements the error interface with a user-presentable message.
func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonVerificationFailed:
		return "verification failed: please complete the human verification check"
	case ReasonTooManyLines:
		return fmt.Sprintf("too many lines: %d lines submitted, maximum is %d", e.Actual, e.Max)
	case ReasonTooLarge:
		return fmt.Sprintf("input too large: %d bytes submitted, maximum is %d", e.Actual, e.Max)
	default:
		return "invalid input"
	}
}

// NewVerificationError creates a rejection for a failed verification check.
func NewVerificationError() *ValidationError {
	return &ValidationError{Reason: ReasonVerificationFailed}
}

// NewTooManyLinesError creates a rejection for a line-count overflow.
func NewTooManyLinesError(actual, maxLines int) *ValidationError {
	return &ValidationError{Reason: ReasonTooManyLines, Actual: actual, Max: maxLines}
}

// NewTooLargeError creates a rejection for a byte-size overflow.
func NewTooLargeError(actual, maxBytes int) *ValidationError {
	return &ValidationError{Reason: ReasonTooLarge, Actual: actual, Max: maxBytes}
}
