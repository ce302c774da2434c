package engine

import (
	"context"

	"github.com/tonescan/tonescan/internal/model"
)

// Engine defines the interface all scoring engines implement.
// Each engine maps sanitized text to one numeric metric.
//
// Design decision: We use an interface rather than a function type because:
//  1. Engines carry configuration state (lexicons, clients, limits)
//  2. Name/Label/Scale keep results self-describing
//  3. It allows mocking in pipeline tests
type Engine interface {
	// Name returns the engine's short identifier, used as the column key
	// (e.g. "vader").
	Name() string

	// Label returns the human-readable column header including the scale
	// description (e.g. "vader: -1.0 (negative emotion) to +1.0 (positive emotion)").
	Label() string

	// Scale returns the engine's documented output range.
	Scale() model.Scale

	// Score computes the engine's metric for the given sanitized text.
	// The text must already be sanitized; engines never receive raw input.
	// An error return means this engine produced no score for this line;
	// it must never affect other engines or other lines.
	//
	// Implementations must respect context cancellation where they block.
	Score(ctx context.Context, text string) (float64, error)
}

// Registry is an ordered collection of engines. Registration order is
// column order in every rendered table.
//
// A Registry is populated once per request and read-only afterwards, so
// no locking is needed during scoring.
type Registry struct {
	engines []Engine
}

// NewRegistry creates a Registry holding the given engines in order.
func NewRegistry(engines ...Engine) *Registry {
	r := &Registry{engines: make([]Engine, 0, len(engines))}
	for _, e := range engines {
		r.Register(e)
	}
	return r
}

// Register appends an engine. Nil engines are ignored so callers can pass
// conditionally-constructed engines without branching.
func (r *Registry) Register(e Engine) {
	if e == nil {
		return
	}
	r.engines = append(r.engines, e)
}

// Engines returns the registered engines in registration order.
// Callers must not mutate the returned slice.
func (r *Registry) Engines() []Engine {
	return r.engines
}

// Len returns the number of registered engines.
func (r *Registry) Len() int {
	return len(r.engines)
}

// Columns returns the table columns the registered engines produce,
// in registration order.
func (r *Registry) Columns() []model.Column {
	cols := make([]model.Column, len(r.engines))
	for i, e := range r.engines {
		cols[i] = model.Column{
			Name:  e.Name(),
			Label: e.Label(),
			Scale: e.Scale(),
		}
	}
	return cols
}
