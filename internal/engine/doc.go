// Package engine provides the scoring engines and their registry.
//
// # Purpose
//
// Each engine maps sanitized text to one named numeric metric on its own
// documented scale. Engines come in two behavioral classes:
//
//   - Local engines (vader, polarity, subjectivity): synchronous,
//     deterministic, cannot fail for well-formed input, bounded local time.
//   - Remote engines (perspective): network-backed, quota-limited, fallible.
//     Their failures are data, not control flow; the pipeline records them
//     in the corresponding table cell and moves on.
//
// # Design Philosophy
//
// Engines implement one capability interface and are iterated through a
// Registry. This design was chosen because:
//  1. Adding a metric means registering an implementation, not branching
//  2. The orchestrator never inspects engine identity except for labeling
//  3. Individual engines are trivially testable in isolation
//
// # Scales
//
// Every engine carries its scale (range endpoints plus meaning) so results
// remain self-describing without external documentation:
//   - vader: -1.0 (negative emotion) to +1.0 (positive emotion)
//   - polarity: -1.0 (negative) to +1.0 (positive)
//   - subjectivity: 0.0 (objective) to +1.0 (subjective)
//   - perspective: 0.0 (not toxic) to +1.0 (toxic)
package engine
