package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hurttlocker/vitals/internal/store"
)

// newTestStore creates an in-memory store for testing.
func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewStore(store.StoreConfig{DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	e := NewEngine(s)

	path := writeCSV(t, "intake.csv", `patient,weight,height
p1,70kg,180cm
p2,11st 6lb,5'10
p3,invalid data,tall
p4,120斤,1.75m
`)

	result, err := e.ImportCSV(ctx, path, ImportOptions{})
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}

	if result.Rows != 4 {
		t.Errorf("Rows = %d, want 4", result.Rows)
	}
	if result.ParsedWeights != 3 || result.FailedWeights != 1 {
		t.Errorf("weights = %d/%d, want 3 parsed 1 failed", result.ParsedWeights, result.FailedWeights)
	}
	if result.ParsedHeights != 3 || result.FailedHeights != 1 {
		t.Errorf("heights = %d/%d, want 3 parsed 1 failed", result.ParsedHeights, result.FailedHeights)
	}

	// Every row including the failed one lands in the store.
	obs, err := s.ListObservations(ctx, store.ListOpts{})
	if err != nil {
		t.Fatalf("ListObservations: %v", err)
	}
	if len(obs) != 4 {
		t.Fatalf("expected 4 observations, got %d", len(obs))
	}

	failed, err := s.ListObservations(ctx, store.ListOpts{FailedOnly: true})
	if err != nil {
		t.Fatalf("ListObservations failed-only: %v", err)
	}
	if len(failed) != 1 {
		t.Fatalf("expected 1 failed observation, got %d", len(failed))
	}
	if failed[0].RawWeight != "invalid data" {
		t.Errorf("failed raw weight = %q", failed[0].RawWeight)
	}
	if failed[0].SourceLine != 4 {
		t.Errorf("failed source line = %d, want 4", failed[0].SourceLine)
	}
}

func TestImportCSV_DryRun(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	e := NewEngine(s)

	path := writeCSV(t, "intake.csv", "weight\n70kg\n")

	result, err := e.ImportCSV(ctx, path, ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if result.ParsedWeights != 1 {
		t.Errorf("ParsedWeights = %d, want 1", result.ParsedWeights)
	}

	obs, err := s.ListObservations(ctx, store.ListOpts{})
	if err != nil {
		t.Fatalf("ListObservations: %v", err)
	}
	if len(obs) != 0 {
		t.Errorf("dry run wrote %d observations", len(obs))
	}
}

func TestImportCSV_MissingColumns(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(newTestStore(t))

	path := writeCSV(t, "bad.csv", "patient,age\np1,40\n")

	if _, err := e.ImportCSV(ctx, path, ImportOptions{}); err == nil {
		t.Fatal("expected error for header without weight or height")
	}
}

func TestImportCSV_TSVAndBlankRows(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	e := NewEngine(s)

	path := writeCSV(t, "intake.tsv", "weight\theight\n70kg\t180cm\n\t\n")

	result, err := e.ImportCSV(ctx, path, ImportOptions{})
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if result.Rows != 1 {
		t.Errorf("Rows = %d, want 1 (blank row skipped)", result.Rows)
	}
}

func TestImportResult_Add(t *testing.T) {
	total := &ImportResult{}
	total.Add(&ImportResult{Rows: 2, ParsedWeights: 2})
	total.Add(&ImportResult{Rows: 1, FailedHeights: 1})
	if total.Rows != 3 || total.ParsedWeights != 2 || total.FailedHeights != 1 {
		t.Errorf("Add merged wrong: %+v", total)
	}
}

func TestFormatImportResult(t *testing.T) {
	out := FormatImportResult(&ImportResult{
		Rows: 10, ParsedWeights: 8, FailedWeights: 2, ParsedHeights: 9, FailedHeights: 1,
	})
	for _, want := range []string{"Rows: 10", "8 parsed, 2 failed", "9 parsed, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q in %q", want, out)
		}
	}
}
