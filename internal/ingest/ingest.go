// Package ingest feeds batch files of raw clinical entries through the safe
// parsers and records every row in the audit store.
//
// Batch input is CSV: a header row naming at least one of the "weight" and
// "height" columns, one patient entry per row. Rows the parsers reject are
// still recorded, with the raw string preserved and the normalized value
// absent — a bad record never aborts the run.
package ingest

import (
	"fmt"
	"strings"

	"github.com/hurttlocker/vitals/internal/normalize"
	"github.com/hurttlocker/vitals/internal/store"
)

// ImportOptions controls a batch import.
type ImportOptions struct {
	DryRun     bool
	Limits     normalize.Limits
	ProgressFn func(current, total int) // optional
}

// ImportResult accumulates counts across one or more imports.
type ImportResult struct {
	Rows          int
	ParsedWeights int
	FailedWeights int
	ParsedHeights int
	FailedHeights int
}

// Add merges another result into this one.
func (r *ImportResult) Add(other *ImportResult) {
	r.Rows += other.Rows
	r.ParsedWeights += other.ParsedWeights
	r.FailedWeights += other.FailedWeights
	r.ParsedHeights += other.ParsedHeights
	r.FailedHeights += other.FailedHeights
}

// Engine runs batch imports against a store.
type Engine struct {
	store store.Store
}

// NewEngine creates an import engine backed by the given store.
func NewEngine(s store.Store) *Engine {
	return &Engine{store: s}
}

// FormatImportResult renders a human-readable import summary.
func FormatImportResult(r *ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rows: %d\n", r.Rows)
	fmt.Fprintf(&b, "Weights: %d parsed, %d failed\n", r.ParsedWeights, r.FailedWeights)
	fmt.Fprintf(&b, "Heights: %d parsed, %d failed\n", r.ParsedHeights, r.FailedHeights)
	return b.String()
}
