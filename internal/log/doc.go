// Package log provides a redacting slog handler.
//
// The scoring pipeline handles a third-party API credential, and log
// lines carry structured attributes from many call sites. RedactHandler
// wraps any slog.Handler and masks attribute values that look like
// credentials, by key name or by value shape, so the Perspective API key
// can never leak into log output even if a call site logs it by mistake.
package log
