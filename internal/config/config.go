package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The submission ceilings match the original service limits; the rest are
// chosen for responsive interactive use.
const (
	// DefaultMaxLines is the largest accepted line count. A submission
	// of more than this many lines is rejected before any scoring.
	DefaultMaxLines = 51

	// DefaultMaxBytes is the largest accepted total submission size,
	// roughly 2,500 bytes per line across 50 lines of user intent.
	// It is enforced on the total length, independently of MaxLines.
	DefaultMaxBytes = 125000

	// DefaultConcurrency caps how many lines are scored simultaneously.
	// It mostly matters for the remote engine, where it bounds the
	// number of outbound calls in flight.
	DefaultConcurrency = 8

	// DefaultRemoteTimeout bounds each remote scoring call so one slow
	// or unreachable service cannot stall the batch indefinitely.
	DefaultRemoteTimeout = 10 * time.Second

	// DefaultRemoteMaxChars is the remote engine's input ceiling.
	// Longer lines fail locally without a network call.
	DefaultRemoteMaxChars = 2900

	// DefaultLanguageHint is the language sent with remote requests.
	DefaultLanguageHint = "en"

	// DefaultFormat is the default report output format.
	DefaultFormat = "text"

	// AppName is the application name used for XDG directory paths.
	AppName = "tonescan"

	// EnvAPIKey is the environment variable consulted for the remote
	// engine credential when neither flag nor config file provides one.
	EnvAPIKey = "PERSPECTIVE_API_KEY"
)

// Formats lists the accepted report output formats.
var Formats = []string{"text", "html", "markdown", "json"}

// Config holds all configuration options for tonescan.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// MaxLines is the largest accepted line count per submission.
	MaxLines int

	// MaxBytes is the largest accepted total byte length per submission.
	// Independent of MaxLines; neither is derived from the other.
	MaxBytes int

	// Concurrency caps how many lines are scored simultaneously.
	Concurrency int

	// RemoteTimeout bounds each remote scoring call.
	RemoteTimeout time.Duration

	// RemoteMaxChars is the remote engine's per-line input ceiling.
	RemoteMaxChars int

	// RemoteEndpoint overrides the remote scoring service URL.
	// Empty means the engine's default endpoint.
	RemoteEndpoint string

	// APIKey is the remote scoring service credential. Required only
	// when EnableRemote is true. Never logged.
	APIKey string

	// LanguageHint is the language sent with remote requests.
	LanguageHint string

	// EnableRemote opts this run into the remote toxicity engine.
	// Off by default: local engines need no opt-in and no credential.
	EnableRemote bool

	// Format selects the report output format (text, html, markdown, json).
	Format string

	// OutputFile is the report destination path. Empty means stdout.
	OutputFile string

	// InputFile is the submission source path. Empty means stdin.
	InputFile string

	// ConfigFilePath is an explicit config file path. Empty triggers
	// discovery (working directory, then XDG config directory).
	ConfigFilePath string

	// SkipVerify treats the human-verification signal as passed.
	// The CLI has no interactive challenge, so this models the
	// collaborator's verdict; servers embedding the pipeline supply
	// their own.
	SkipVerify bool

	// Verbose enables debug-level log output.
	Verbose bool
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero values
// because most defaults are non-zero. It also documents the defaults.
func NewConfig() *Config {
	return &Config{
		MaxLines:       DefaultMaxLines,
		MaxBytes:       DefaultMaxBytes,
		Concurrency:    DefaultConcurrency,
		RemoteTimeout:  DefaultRemoteTimeout,
		RemoteMaxChars: DefaultRemoteMaxChars,
		LanguageHint:   DefaultLanguageHint,
		Format:         DefaultFormat,
		SkipVerify:     true,
	}
}

// XDGConfigDir returns the XDG config directory for tonescan.
// On Linux: ~/.config/tonescan
// On macOS: ~/Library/Application Support/tonescan
// On Windows: %APPDATA%\tonescan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first error found; fixing one error often makes the
// others irrelevant.
func (c *Config) Validate() error {
	if c.MaxLines <= 0 {
		return ErrInvalidMaxLines
	}
	if c.MaxBytes <= 0 {
		return ErrInvalidMaxBytes
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.RemoteTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.RemoteMaxChars <= 0 {
		return ErrInvalidRemoteMaxChars
	}
	if !validFormat(c.Format) {
		return ErrInvalidFormat
	}
	if c.EnableRemote && c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// validFormat reports whether format is one of the accepted formats.
func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
