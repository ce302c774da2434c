package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tonescan/tonescan/internal/config"
	"github.com/tonescan/tonescan/internal/engine"
	"github.com/tonescan/tonescan/internal/log"
	"github.com/tonescan/tonescan/internal/model"
	"github.com/tonescan/tonescan/internal/pipeline"
	"github.com/tonescan/tonescan/internal/report"
	"github.com/tonescan/tonescan/internal/verify"
)

// NewScoreCmd creates the score command.
func NewScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [file]",
		Short: "Score each line of a text submission",
		Long: `Score splits a submission into lines, sanitizes each line, and scores it
with every enabled engine:

- vader: normalized lexicon sentiment in [-1, 1]
- polarity: pattern lexicon sentiment in [-1, 1]
- subjectivity: pattern lexicon subjectivity in [0, 1]
- perspective (opt-in): remote toxicity score in [0, 1]

The submission is read from the file argument, or from stdin when no
argument is given. A failed engine call never discards the row; the
affected cell carries the error instead.

Examples:
  # Score a file with the local engines
  tonescan score comments.txt

  # Score stdin and render an HTML table
  cat comments.txt | tonescan score --format html --output scores.html

  # Include the remote toxicity engine
  tonescan score --remote --api-key "$PERSPECTIVE_API_KEY" comments.txt

Configuration file (.tonescan) example:
  api_key: "AIza..."
  language: "en"
  max_lines: 51
  concurrency: 8
  timeout: "10s"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScoreCmd,
	}

	// Engine selection flags
	cmd.Flags().BoolP("remote", "r", false,
		"Enable the remote toxicity engine (requires an API key)")
	cmd.Flags().StringP("api-key", "k", "",
		"Remote scoring service API key (default: $"+config.EnvAPIKey+")")
	cmd.Flags().StringP("language", "l", config.DefaultLanguageHint,
		"Language hint sent with remote requests")
	cmd.Flags().DurationP("timeout", "t", config.DefaultRemoteTimeout,
		"Timeout for each remote scoring call")

	// Submission limit flags
	cmd.Flags().Int("max-lines", config.DefaultMaxLines,
		"Maximum number of lines accepted per submission")
	cmd.Flags().Int("max-bytes", config.DefaultMaxBytes,
		"Maximum submission size in bytes")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of lines scored concurrently")

	cmd.Flags().Bool("skip-verify", true,
		"Treat the human-verification gate as passed")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .tonescan in current or config directory)")

	// Report flags
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Output format: text, html, markdown, or json")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file path (creates directories if needed)")

	return cmd
}

// runScoreCmd executes the score command.
func runScoreCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScoreConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential redaction
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScore(ctx, cfg, logger)
}

// buildScoreConfig creates a Config from cobra command flags.
// Precedence is defaults, then the config file, then explicit flags.
func buildScoreConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load overrides from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cf.ApplyTo(cfg); err != nil {
			return nil, err
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flags override the config file, but only when the user set them.
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return nil, err
	}

	// Environment variable is the last resort for the API key.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(config.EnvAPIKey)
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional argument is the input file; stdin otherwise.
	if len(args) > 0 {
		cfg.InputFile = args[0]
	}

	return cfg, nil
}

// applyFlagOverrides copies explicitly-set flag values onto cfg.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if cfg.EnableRemote, err = flags.GetBool("remote"); err != nil {
		return err
	}

	if flags.Changed("api-key") {
		if cfg.APIKey, err = flags.GetString("api-key"); err != nil {
			return err
		}
	}
	if flags.Changed("language") {
		if cfg.LanguageHint, err = flags.GetString("language"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.RemoteTimeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("max-lines") {
		if cfg.MaxLines, err = flags.GetInt("max-lines"); err != nil {
			return err
		}
	}
	if flags.Changed("max-bytes") {
		if cfg.MaxBytes, err = flags.GetInt("max-bytes"); err != nil {
			return err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return err
		}
	}

	if cfg.SkipVerify, err = flags.GetBool("skip-verify"); err != nil {
		return err
	}

	if cfg.Format, err = flags.GetString("format"); err != nil {
		return err
	}
	if cfg.OutputFile, err = flags.GetString("output"); err != nil {
		return err
	}

	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runScore reads the submission, scores it, and writes the report.
func runScore(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	raw, err := readSubmission(cfg)
	if err != nil {
		return err
	}

	logger.Info("starting scoring",
		"bytes", len(raw),
		"remote", cfg.EnableRemote,
		"format", cfg.Format,
		"concurrency", cfg.Concurrency,
	)

	verified := verify.Resolve(ctx, verify.Static(cfg.SkipVerify))

	proc, err := buildProcessor(cfg, logger)
	if err != nil {
		return err
	}

	table, err := proc.Run(ctx, raw, verified, cfg.EnableRemote)
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Errorf("submission rejected: %w", vErr)
		}
		return err
	}

	if failed := table.FailureCount(); failed > 0 {
		logger.Warn("some scores could not be computed", "failed", failed)
	}

	return outputTable(cfg, table)
}

// readSubmission reads the raw submission from the input file or stdin.
func readSubmission(cfg *config.Config) (string, error) {
	if cfg.InputFile != "" {
		data, err := os.ReadFile(cfg.InputFile) //nolint:gosec // User-provided input path is intentional
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// buildProcessor assembles the scoring processor from the configuration.
func buildProcessor(cfg *config.Config, logger *slog.Logger) (*pipeline.Processor, error) {
	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithLimits(pipeline.Limits{
			MaxLines: cfg.MaxLines,
			MaxBytes: cfg.MaxBytes,
		}),
	}

	if cfg.EnableRemote {
		remote, err := buildRemoteEngine(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithRemoteEngine(remote))
	}

	return pipeline.NewDefault(opts...), nil
}

// buildRemoteEngine creates the remote toxicity engine from the configuration.
func buildRemoteEngine(cfg *config.Config) (engine.Engine, error) {
	opts := []engine.PerspectiveOption{
		engine.WithTimeout(cfg.RemoteTimeout),
		engine.WithMaxChars(cfg.RemoteMaxChars),
		engine.WithLanguageHint(cfg.LanguageHint),
	}
	if cfg.RemoteEndpoint != "" {
		opts = append(opts, engine.WithEndpoint(cfg.RemoteEndpoint))
	}

	remote, err := engine.NewPerspective(cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to configure remote engine: %w", err)
	}
	return remote, nil
}

// outputTable writes the score table in the requested format.
func outputTable(cfg *config.Config, table *model.ResultTable) error {
	var output *os.File
	if cfg.OutputFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	writer, err := report.NewWriter(cfg.Format, output)
	if err != nil {
		return err
	}

	_, err = writer.Write(table)
	return err
}
