package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

const dateLayout = "2006-01-02"

// SaveTransactions saves multiple transactions, ignoring duplicates by hash.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, txns []model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, hash, date, raw_description, cleaned_description, amount, location, source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range txns {
		if t.Hash == "" {
			t.Hash = t.GenerateHash()
		}
		if t.ID == "" {
			t.ID = t.Hash[:16]
		}
		if _, err := stmt.ExecContext(ctx,
			t.ID, t.Hash, t.Date.Format(dateLayout),
			t.RawDescription, t.CleanedDescription,
			t.Amount.StringFixed(2), t.Location, t.Source,
		); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// GetTransactions returns stored transactions matching the filter, ordered by
// date ascending.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	query := `SELECT id, hash, date, raw_description, cleaned_description, amount, location, source
		FROM transactions`

	var conds []string
	var args []any
	if filter.StartDate != nil {
		conds = append(conds, "date >= ?")
		args = append(args, filter.StartDate.Format(dateLayout))
	}
	if filter.EndDate != nil {
		conds = append(conds, "date <= ?")
		args = append(args, filter.EndDate.Format(dateLayout))
	}
	if filter.Source != "" {
		conds = append(conds, "source = ?")
		args = append(args, filter.Source)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var date, amount string
		if err := rows.Scan(&t.ID, &t.Hash, &date, &t.RawDescription, &t.CleanedDescription,
			&amount, &t.Location, &t.Source); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		t.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("corrupt date %q for transaction %s: %w", date, t.ID, err)
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q for transaction %s: %w", amount, t.ID, err)
		}

		txns = append(txns, t)
	}

	return txns, rows.Err()
}
