package config

import "errors"

// Configuration validation errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic handling while keeping human-readable
// messages.
var (
	// ErrInvalidMaxLines is returned when the line-count ceiling is not
	// positive. A non-positive ceiling would reject every submission.
	ErrInvalidMaxLines = errors.New("invalid max lines: must be positive")

	// ErrInvalidMaxBytes is returned when the byte-size ceiling is not
	// positive.
	ErrInvalidMaxBytes = errors.New("invalid max bytes: must be positive")

	// ErrInvalidConcurrency is returned when the concurrency cap is not
	// positive. Zero concurrency would mean no scoring at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidTimeout is returned when the remote call timeout is not
	// positive. A zero timeout would fail every remote call immediately.
	ErrInvalidTimeout = errors.New("invalid remote timeout: must be positive")

	// ErrInvalidRemoteMaxChars is returned when the remote input ceiling
	// is not positive.
	ErrInvalidRemoteMaxChars = errors.New("invalid remote max chars: must be positive")

	// ErrInvalidFormat is returned when the output format is not one of
	// text, html, markdown, or json.
	ErrInvalidFormat = errors.New("invalid format: must be one of text, html, markdown, json")

	// ErrMissingAPIKey is returned when the remote engine is enabled
	// without a credential. Set --api-key, the config file's api_key,
	// or the PERSPECTIVE_API_KEY environment variable.
	ErrMissingAPIKey = errors.New("remote scoring enabled but no API key configured")
)
