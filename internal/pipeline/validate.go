package pipeline

import "github.com/tonescan/tonescan/internal/model"

// Default submission ceilings. Both are independent knobs: the byte ceiling
// is not derived from the line ceiling even though the defaults line up as
// roughly 2,500 bytes per line across 50 lines of user intent.
const (
	// DefaultMaxLines is the largest accepted line count. 51 keeps the
	// original gate: a submission of more than 50 intended lines (plus
	// the tolerance line its trailing newline used to occupy) is rejected.
	DefaultMaxLines = 51

	// DefaultMaxBytes is the largest accepted total submission size.
	DefaultMaxBytes = 125000
)

// Limits bounds a submission before any scoring work begins.
type Limits struct {
	// MaxLines is the largest accepted line count.
	MaxLines int

	// MaxBytes is the largest accepted total byte length.
	MaxBytes int
}

// DefaultLimits returns the standard submission ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxLines: DefaultMaxLines,
		MaxBytes: DefaultMaxBytes,
	}
}

// Validate decides accept/reject for a submission before any sanitization
// or scoring happens. It returns nil on acceptance.
//
// Checks run in order: verification signal, line count, byte length. The
// first breach wins and is returned with the measured offending value so
// the caller can render a precise message. On rejection, the guarantee is
// that no downstream work of any kind has started.
func Validate(raw string, verified bool, limits Limits) *model.ValidationError {
	if !verified {
		return model.NewVerificationError()
	}

	if count := model.CountLines(raw); count > limits.MaxLines {
		return model.NewTooManyLinesError(count, limits.MaxLines)
	}

	if len(raw) > limits.MaxBytes {
		return model.NewTooLargeError(len(raw), limits.MaxBytes)
	}

	return nil
}
