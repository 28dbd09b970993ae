package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hurttlocker/vitals/internal/normalize"
	"github.com/hurttlocker/vitals/internal/store"
)

// ImportCSV parses a CSV (or TSV) file of raw entries and records one
// observation per row. The first row is the header; the "weight" and
// "height" columns are matched case-insensitively and at least one must be
// present. Other columns are ignored.
func (e *Engine) ImportCSV(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if strings.ToLower(filepath.Ext(path)) == ".tsv" {
		reader.Comma = '\t'
	}
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV %s: %w", path, err)
	}
	if len(records) < 2 {
		// Need at least headers + one row
		return &ImportResult{}, nil
	}

	weightCol, heightCol := -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "weight", "wt", "body_weight":
			weightCol = i
		case "height", "ht", "body_height":
			heightCol = i
		}
	}
	if weightCol < 0 && heightCol < 0 {
		return nil, fmt.Errorf("%s: no weight or height column in header", path)
	}

	n := normalize.New(opts.Limits)
	result := &ImportResult{}
	var batch []*store.Observation
	total := len(records) - 1

	for i, row := range records[1:] {
		obs := &store.Observation{
			SourceFile: absPath,
			SourceLine: i + 2, // 1-indexed, skip header row
		}

		if weightCol >= 0 && weightCol < len(row) {
			obs.RawWeight = strings.TrimSpace(row[weightCol])
		}
		if heightCol >= 0 && heightCol < len(row) {
			obs.RawHeight = strings.TrimSpace(row[heightCol])
		}
		if obs.RawWeight == "" && obs.RawHeight == "" {
			continue
		}
		result.Rows++

		if obs.RawWeight != "" {
			if lbs, ok := n.ParseWeightSafe(obs.RawWeight); ok {
				obs.WeightLbs = &lbs
				result.ParsedWeights++
			} else {
				result.FailedWeights++
			}
		}
		if obs.RawHeight != "" {
			if h, ok := n.ParseHeightSafe(obs.RawHeight); ok {
				totalIn := h.TotalInches()
				obs.HeightIn = &totalIn
				obs.HeightDisplay = normalize.FormatHeight(h)
				result.ParsedHeights++
			} else {
				result.FailedHeights++
			}
		}

		batch = append(batch, obs)

		if opts.ProgressFn != nil {
			opts.ProgressFn(i+1, total)
		}
	}

	if !opts.DryRun && len(batch) > 0 {
		if _, err := e.store.AddObservationBatch(ctx, batch); err != nil {
			return nil, fmt.Errorf("recording observations: %w", err)
		}
	}

	return result, nil
}
