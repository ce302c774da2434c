package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tonescan/tonescan/internal/engine"
	"github.com/tonescan/tonescan/internal/model"
	"github.com/tonescan/tonescan/internal/sanitize"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the default cap on lines scored simultaneously.
// It bounds remote-engine fan-out so a large submission does not open an
// unbounded number of outbound calls at once.
const DefaultConcurrency = 8

// Processor is the single entry point of the scoring core: it validates a
// submission, fans every line out to the enabled engines, and assembles
// the ordered result table.
//
// A Processor is read-only after construction and safe for concurrent use;
// each Run call owns all of its intermediate state.
type Processor struct {
	// local holds the always-enabled local engines in column order.
	local *engine.Registry

	// remote is the opt-in remote engine; nil when not configured.
	remote engine.Engine

	// limits bounds submissions before scoring starts.
	limits Limits

	// concurrency caps how many lines are scored simultaneously.
	concurrency int

	// logger is used for structured logging during processing.
	logger *slog.Logger
}

// Option configures a Processor.
// This follows the functional options pattern for clean API design.
type Option func(*Processor)

// WithLogger sets a custom logger for the processor.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithConcurrency caps how many lines are scored simultaneously.
// Non-positive values keep the default.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLimits overrides the submission ceilings.
func WithLimits(limits Limits) Option {
	return func(p *Processor) {
		if limits.MaxLines > 0 {
			p.limits.MaxLines = limits.MaxLines
		}
		if limits.MaxBytes > 0 {
			p.limits.MaxBytes = limits.MaxBytes
		}
	}
}

// WithRemoteEngine attaches the opt-in remote engine. Without it, remote
// opt-in requests simply produce tables with local columns only.
func WithRemoteEngine(e engine.Engine) Option {
	return func(p *Processor) {
		p.remote = e
	}
}

// New creates a Processor scoring with the given local engines.
// The registry must hold at least one engine.
func New(local *engine.Registry, opts ...Option) *Processor {
	p := &Processor{
		local:       local,
		limits:      DefaultLimits(),
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// NewDefault creates a Processor with the standard local engine set:
// vader, polarity, and subjectivity.
func NewDefault(opts ...Option) *Processor {
	return New(engine.NewRegistry(
		engine.NewVader(),
		engine.NewPolarity(),
		engine.NewSubjectivity(),
	), opts...)
}

// Run scores one submission and returns the ordered result table.
//
// verified is the already-resolved human-verification signal; a false
// value rejects the submission exactly like any other validation failure.
// remoteOptIn enables the remote engine for this request only; when false
// no remote column appears and no network call is attempted.
//
// The error return is either a *model.ValidationError or a context error
// from cancellation. Engine failures never surface here; they live in the
// table's cells.
func (p *Processor) Run(ctx context.Context, raw string, verified, remoteOptIn bool) (*model.ResultTable, error) {
	if verr := Validate(raw, verified, p.limits); verr != nil {
		p.logger.Info("submission rejected",
			"reason", verr.Reason.String(),
			"actual", verr.Actual,
			"max", verr.Max,
		)
		return nil, verr
	}

	engines := p.enabledEngines(remoteOptIn)
	lines := model.SplitLines(raw)

	p.logger.Info("starting batch",
		"lines", len(lines),
		"engines", len(engines),
		"remote", remoteOptIn && p.remote != nil,
		"concurrency", p.concurrency,
	)
	startTime := time.Now()

	registry := engine.NewRegistry(engines...)
	table := model.NewResultTable(registry.Columns(), len(lines))

	// Rows are written to the line's input index so the table stays in
	// input order regardless of which lines finish first.
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, line := range lines {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			row := p.processLine(gctx, i, line, engines)

			mu.Lock()
			table.Rows[i] = row
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		p.logger.Warn("batch cancelled", "error", err)
		return nil, err
	}

	p.logger.Info("batch complete",
		"lines", len(lines),
		"failed_cells", table.FailureCount(),
		"elapsed", time.Since(startTime),
	)

	return table, nil
}

// enabledEngines returns the engine set for one request: all local
// engines, plus the remote engine when opted in and configured.
func (p *Processor) enabledEngines(remoteOptIn bool) []engine.Engine {
	local := p.local.Engines()
	if !remoteOptIn || p.remote == nil {
		return local
	}
	engines := make([]engine.Engine, 0, len(local)+1)
	engines = append(engines, local...)
	engines = append(engines, p.remote)
	return engines
}

// processLine sanitizes one line and fans it out to every enabled engine.
//
// Each engine runs once; a failure is recorded in that engine's cell and
// affects nothing else. Empty lines are valid input: sanitization and
// scoring still run and may legitimately yield neutral scores.
func (p *Processor) processLine(ctx context.Context, index int, line string, engines []engine.Engine) model.ResultRow {
	// Sanitize exactly once; engines and reports only ever see safe text.
	safe := sanitize.Sanitize(line)

	results := make([]model.ScoreResult, len(engines))

	g, gctx := errgroup.WithContext(ctx)
	for i, eng := range engines {
		g.Go(func() error {
			value, err := eng.Score(gctx, safe)
			if err != nil {
				p.logger.Debug("engine failed",
					"engine", eng.Name(),
					"line", index+1,
					"error", err,
				)
				results[i] = model.NewScoreError(err)
				// Never propagate: the failure belongs to this cell only.
				return nil
			}
			results[i] = model.NewScore(value)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // Goroutines always return nil

	row := model.NewResultRow(index, safe)
	for i, eng := range engines {
		row.Cells[eng.Name()] = results[i]
	}
	return row
}
