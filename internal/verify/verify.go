// Package verify defines the human-verification collaborator boundary.
//
// The scoring core receives an already-resolved pass/fail signal; this
// package holds the interface the surrounding application implements to
// produce that signal. A web deployment would back it with a CAPTCHA
// provider; the CLI uses Static, because a local operator has no robot
// gate to clear unless they ask for one.
package verify

import "context"

// Verifier decides whether the submitter passed the human check.
// It is consulted exactly once per submission, before validation.
type Verifier interface {
	// Verify reports whether the submitter is considered human.
	// An error means the check itself could not run; callers treat
	// that the same as a false verdict.
	Verify(ctx context.Context) (bool, error)
}

// Static is a Verifier with a fixed verdict.
type Static bool

// Verify returns the fixed verdict.
func (s Static) Verify(_ context.Context) (bool, error) {
	return bool(s), nil
}

// Resolve runs the verifier and folds errors into a false verdict.
func Resolve(ctx context.Context, v Verifier) bool {
	if v == nil {
		return false
	}
	ok, err := v.Verify(ctx)
	return ok && err == nil
}
