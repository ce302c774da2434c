// Package config holds all configuration options for tonescan.
//
// Configuration is assembled in three layers, later layers winning:
// defaults from NewConfig, values from an optional YAML config file
// (.tonescan, discovered in the working directory or the XDG config
// directory), and CLI flags. The resulting Config is validated once,
// before any scoring begins, and passed through the application by
// dependency injection rather than global state.
package config
