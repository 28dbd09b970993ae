package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"
)

// AddObservation inserts a single observation and returns its ID.
func (s *SQLiteStore) AddObservation(ctx context.Context, o *Observation) (int64, error) {
	if o == nil {
		return 0, fmt.Errorf("observation is nil")
	}
	if o.ImportedAt.IsZero() {
		o.ImportedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO observations
			(source_file, source_line, raw_weight, raw_height, weight_lbs, height_in, height_display, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.SourceFile, o.SourceLine, o.RawWeight, o.RawHeight,
		nullFloat(o.WeightLbs), nullFloat(o.HeightIn), o.HeightDisplay, o.ImportedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting observation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting observation id: %w", err)
	}
	o.ID = id
	return id, nil
}

// AddObservationBatch inserts observations inside a single transaction.
func (s *SQLiteStore) AddObservationBatch(ctx context.Context, obs []*Observation) ([]int64, error) {
	if len(obs) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO observations
			(source_file, source_line, raw_weight, raw_height, weight_lbs, height_in, height_display, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing batch insert: %w", err)
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(obs))
	for _, o := range obs {
		if o.ImportedAt.IsZero() {
			o.ImportedAt = time.Now().UTC()
		}
		res, err := stmt.ExecContext(ctx,
			o.SourceFile, o.SourceLine, o.RawWeight, o.RawHeight,
			nullFloat(o.WeightLbs), nullFloat(o.HeightIn), o.HeightDisplay, o.ImportedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting observation (line %d): %w", o.SourceLine, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("getting observation id: %w", err)
		}
		o.ID = id
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing batch: %w", err)
	}
	return ids, nil
}

// ListObservations returns observations ordered by import time, newest first.
func (s *SQLiteStore) ListObservations(ctx context.Context, opts ListOpts) ([]*Observation, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}

	query := `
		SELECT id, source_file, source_line, raw_weight, raw_height,
		       weight_lbs, height_in, height_display, imported_at
		FROM observations`
	var where []string
	var args []any
	if opts.SourceFile != "" {
		where = append(where, "source_file = ?")
		args = append(args, opts.SourceFile)
	}
	if opts.FailedOnly {
		where = append(where, "((raw_weight != '' AND weight_lbs IS NULL) OR (raw_height != '' AND height_in IS NULL))")
	}
	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}
	query += " ORDER BY imported_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing observations: %w", err)
	}
	defer rows.Close()

	var out []*Observation
	for rows.Next() {
		o := &Observation{}
		var weight, height sql.NullFloat64
		if err := rows.Scan(&o.ID, &o.SourceFile, &o.SourceLine, &o.RawWeight, &o.RawHeight,
			&weight, &height, &o.HeightDisplay, &o.ImportedAt); err != nil {
			return nil, fmt.Errorf("scanning observation: %w", err)
		}
		if weight.Valid {
			v := weight.Float64
			o.WeightLbs = &v
		}
		if height.Valid {
			v := height.Float64
			o.HeightIn = &v
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Stats returns row counts and parse failure counts for the store.
func (s *SQLiteStore) Stats(ctx context.Context) (*StoreStats, error) {
	st := &StoreStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(weight_lbs),
			SUM(CASE WHEN raw_weight != '' AND weight_lbs IS NULL THEN 1 ELSE 0 END),
			COUNT(height_in),
			SUM(CASE WHEN raw_height != '' AND height_in IS NULL THEN 1 ELSE 0 END)
		FROM observations`).Scan(
		&st.ObservationCount, &st.ParsedWeights, &nullInt{&st.FailedWeights},
		&st.ParsedHeights, &nullInt{&st.FailedHeights},
	)
	if err != nil {
		return nil, fmt.Errorf("counting observations: %w", err)
	}

	if s.dbPath != ":memory:" {
		if info, err := os.Stat(s.dbPath); err == nil {
			st.DBSizeBytes = info.Size()
		}
	}
	return st, nil
}

// nullFloat converts an optional float to its SQL representation.
func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullInt scans a SUM() result, which is NULL on an empty table.
type nullInt struct{ dst *int64 }

func (n *nullInt) Scan(src any) error {
	if src == nil {
		*n.dst = 0
		return nil
	}
	switch v := src.(type) {
	case int64:
		*n.dst = v
	case float64:
		*n.dst = int64(v)
	default:
		return fmt.Errorf("unexpected sum type %T", src)
	}
	return nil
}
