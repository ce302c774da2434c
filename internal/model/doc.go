// Package model defines the core data types shared across the application.
//
// The central types are ScoreResult (one engine's verdict for one line),
// ResultRow (every engine's verdict for one line), and ResultTable (all rows
// for one submission). All entities are created fresh per request and are
// never persisted; they exist only until a report writer has consumed them.
//
// Design decision: These types live in their own package rather than inside
// the pipeline package because:
//  1. Engines, the pipeline, and report writers all depend on them
//  2. It keeps the dependency graph acyclic (everything imports model,
//     model imports nothing internal)
//  3. It mirrors the separation between computation and presentation
package model
