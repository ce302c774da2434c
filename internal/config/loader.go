package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".tonescan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .tonescan configuration file.
// Every field is optional; zero values leave the corresponding Config
// value untouched, so the file only needs to state what it changes.
type File struct {
	// APIKey is the remote scoring service credential.
	APIKey string `yaml:"api_key,omitempty"`

	// Endpoint overrides the remote scoring service URL.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Language is the language hint for remote requests.
	Language string `yaml:"language,omitempty"`

	// MaxLines overrides the line-count ceiling.
	MaxLines int `yaml:"max_lines,omitempty"`

	// MaxBytes overrides the byte-size ceiling.
	MaxBytes int `yaml:"max_bytes,omitempty"`

	// Concurrency overrides the line-scoring concurrency cap.
	Concurrency int `yaml:"concurrency,omitempty"`

	// Timeout overrides the remote call timeout, in Go duration syntax
	// (e.g. "10s", "500ms").
	Timeout string `yaml:"timeout,omitempty"`
}

// LoadConfigFile loads configuration overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound; callers decide
// whether that matters based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// ApplyTo copies the file's non-zero values onto cfg. Flag handling runs
// after this, so flags win over the file and the file wins over defaults.
func (cf *File) ApplyTo(cfg *Config) error {
	if cf.APIKey != "" {
		cfg.APIKey = cf.APIKey
	}
	if cf.Endpoint != "" {
		cfg.RemoteEndpoint = cf.Endpoint
	}
	if cf.Language != "" {
		cfg.LanguageHint = cf.Language
	}
	if cf.MaxLines > 0 {
		cfg.MaxLines = cf.MaxLines
	}
	if cf.MaxBytes > 0 {
		cfg.MaxBytes = cf.MaxBytes
	}
	if cf.Concurrency > 0 {
		cfg.Concurrency = cf.Concurrency
	}
	if cf.Timeout != "" {
		d, err := time.ParseDuration(cf.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in config file: %w", err)
		}
		cfg.RemoteTimeout = d
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .tonescan in the current directory
//  3. Look for .tonescan in the XDG config directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}
