package pipeline

import (
	"strings"
	"testing"

	"github.com/tonescan/tonescan/internal/model"
)

// TestValidate tests the fail-fast submission gate.
func TestValidate(t *testing.T) {
	t.Parallel()

	limits := DefaultLimits()

	t.Run("accepts small verified submission", func(t *testing.T) {
		t.Parallel()

		if verr := Validate("hello\nworld", true, limits); verr != nil {
			t.Errorf("expected acceptance, got %v", verr)
		}
	})

	t.Run("failed verification always rejects", func(t *testing.T) {
		t.Parallel()

		verr := Validate("hello", false, limits)
		if verr == nil {
			t.Fatal("expected rejection")
		}
		if verr.Reason != model.ReasonVerificationFailed {
			t.Errorf("expected verification-failed, got %v", verr.Reason)
		}
	})

	t.Run("verification is checked before size", func(t *testing.T) {
		t.Parallel()

		big := strings.Repeat("line\n", 1000)
		verr := Validate(big, false, limits)
		if verr == nil || verr.Reason != model.ReasonVerificationFailed {
			t.Errorf("expected verification-failed first, got %v", verr)
		}
	})

	t.Run("sixty lines are rejected with the true count", func(t *testing.T) {
		t.Parallel()

		raw := strings.Repeat("line\n", 60)
		verr := Validate(raw, true, limits)
		if verr == nil {
			t.Fatal("expected rejection")
		}
		if verr.Reason != model.ReasonTooManyLines {
			t.Errorf("expected too-many-lines, got %v", verr.Reason)
		}
		if verr.Actual != 60 {
			t.Errorf("expected actual=60, got %d", verr.Actual)
		}
		if verr.Max != DefaultMaxLines {
			t.Errorf("expected max=%d, got %d", DefaultMaxLines, verr.Max)
		}
	})

	t.Run("line count at the ceiling is accepted", func(t *testing.T) {
		t.Parallel()

		raw := strings.Repeat("line\n", DefaultMaxLines)
		if verr := Validate(raw, true, limits); verr != nil {
			t.Errorf("expected acceptance at the ceiling, got %v", verr)
		}
	})

	t.Run("one line over the ceiling is rejected", func(t *testing.T) {
		t.Parallel()

		raw := strings.Repeat("line\n", DefaultMaxLines+1)
		verr := Validate(raw, true, limits)
		if verr == nil || verr.Reason != model.ReasonTooManyLines {
			t.Errorf("expected too-many-lines, got %v", verr)
		}
	})

	t.Run("oversized submission is rejected with the true byte length", func(t *testing.T) {
		t.Parallel()

		small := Limits{MaxLines: 10, MaxBytes: 16}
		raw := "this line is longer than sixteen bytes"
		verr := Validate(raw, true, small)
		if verr == nil {
			t.Fatal("expected rejection")
		}
		if verr.Reason != model.ReasonTooLarge {
			t.Errorf("expected too-large, got %v", verr.Reason)
		}
		if verr.Actual != len(raw) {
			t.Errorf("expected actual=%d, got %d", len(raw), verr.Actual)
		}
	})

	t.Run("line ceiling is checked before byte ceiling", func(t *testing.T) {
		t.Parallel()

		small := Limits{MaxLines: 2, MaxBytes: 4}
		verr := Validate("a\nb\nc\n", true, small)
		if verr == nil || verr.Reason != model.ReasonTooManyLines {
			t.Errorf("expected too-many-lines, got %v", verr)
		}
	})

	t.Run("empty submission is accepted", func(t *testing.T) {
		t.Parallel()

		if verr := Validate("", true, limits); verr != nil {
			t.Errorf("expected acceptance, got %v", verr)
		}
	})
}
