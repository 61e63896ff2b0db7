package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/tally/internal/model"
)

// SaveRun appends one analysis run's classification results as history.
func (s *SQLiteStorage) SaveRun(ctx context.Context, runAt time.Time, results []model.ClassificationResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO classification_runs (
			run_at, merchant_id, merchant, category, subcategory, kind,
			active_month_ratio, cv, consistent, typical_monthly, trace
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	ts := runAt.UTC().Format(time.RFC3339)
	for _, r := range results {
		trace, err := json.Marshal(r.TraceLines())
		if err != nil {
			return fmt.Errorf("failed to encode trace for %s: %w", r.Merchant.ID, err)
		}

		consistent := 0
		if r.Consistent {
			consistent = 1
		}

		if _, err := stmt.ExecContext(ctx,
			ts, r.Merchant.ID, r.Merchant.Name, r.Merchant.Category, r.Merchant.Subcategory,
			string(r.Kind), r.ActiveMonthRatio, r.CV, consistent,
			r.TypicalMonthly.StringFixed(2), string(trace),
		); err != nil {
			return fmt.Errorf("failed to insert classification for %s: %w", r.Merchant.ID, err)
		}
	}

	return tx.Commit()
}
