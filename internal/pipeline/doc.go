// Package pipeline turns one untrusted submission into one ResultTable.
//
// The flow is: validate (fail fast, before any scoring work) -> split into
// lines -> per line: sanitize once, fan out to every enabled engine ->
// assemble rows into a table in input order.
//
// Two failure tiers are handled differently. Request-level validation
// failures (verification, line count, byte size) are terminal and carry a
// typed reason plus the measured offending value. Engine-level failures
// are recovered locally: each becomes a failure cell in exactly one row,
// and never aborts the row, the batch, or the request.
//
// Design decision: Lines and engines both run concurrently under errgroup
// because engines for a line are independent of one another and of other
// lines. Ordering is a property of assembly, not execution: each line's
// row is written to its input index, so the table is in input order no
// matter which scores finish first.
package pipeline
