// Package analysis implements the inventory analysis engine: year column
// detection, per-item usage history extraction, usage-gap lifetime
// estimation, replenishment event projection, and inflation-compounded
// price projection.
//
// # Architecture
//
// The package is organized around small pure calculators plus one
// orchestrator:
//
//  1. DetectYearColumns: normalizes raw column headers into canonical years
//  2. EstimateLifetime / PredictEvents: usage cadence and event rollout
//  3. RateTable: compounded inflation factors and price projection
//  4. Pipeline: runs detection and extraction over a whole table
//
// # Data Flow
//
//	Raw table → Pipeline → []domain.ItemHistory → {price, replenishment} projections
//
// # Error Handling
//
// Dataset-level failures (missing required column, no year columns) abort a
// run and are surfaced to the caller as wrapped sentinel errors. Per-row and
// per-cell parse failures are silently excluded: the engine favors a
// complete dataset-level result over per-row strictness. Insufficient
// history is not an error; it yields an empty event sequence.
package analysis
