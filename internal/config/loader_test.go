package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfigFile tests YAML parsing and discovery behavior.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads all fields", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		content := `api_key: secret-key
endpoint: https://example.com/analyze
language: fr
max_lines: 20
max_bytes: 50000
concurrency: 4
timeout: 5s
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.APIKey != "secret-key" {
			t.Errorf("expected api key 'secret-key', got %q", cf.APIKey)
		}
		if cf.MaxLines != 20 || cf.MaxBytes != 50000 || cf.Concurrency != 4 {
			t.Errorf("unexpected limits: %+v", cf)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed yaml returns an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(":\n  - not yaml"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

// TestFileApplyTo tests layering: non-zero file values override defaults,
// zero values leave them alone.
func TestFileApplyTo(t *testing.T) {
	t.Parallel()

	t.Run("non-zero values override", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cf := &File{
			APIKey:   "from-file",
			MaxLines: 10,
			Timeout:  "3s",
		}
		if err := cf.ApplyTo(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIKey != "from-file" {
			t.Errorf("expected api key override, got %q", cfg.APIKey)
		}
		if cfg.MaxLines != 10 {
			t.Errorf("expected MaxLines 10, got %d", cfg.MaxLines)
		}
		if cfg.RemoteTimeout != 3*time.Second {
			t.Errorf("expected timeout 3s, got %v", cfg.RemoteTimeout)
		}
	})

	t.Run("zero values keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := (&File{}).ApplyTo(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MaxLines != DefaultMaxLines || cfg.MaxBytes != DefaultMaxBytes {
			t.Errorf("expected defaults preserved, got %+v", cfg)
		}
	})

	t.Run("bad duration is an error", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := (&File{Timeout: "soon"}).ApplyTo(cfg); err == nil {
			t.Error("expected duration parse error")
		}
	})
}

// TestFindConfigFile tests explicit-path resolution.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("max_lines: 5"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path yields empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope")); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}
