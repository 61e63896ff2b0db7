// Package service defines the interfaces between the CLI commands and the
// persistence layer.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/tally/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Source    string
}

// Storage is the contract for the persistence layer. Imported transactions
// are deduplicated by hash; classification runs are append-only history.
type Storage interface {
	SaveTransactions(ctx context.Context, txns []model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	SaveRun(ctx context.Context, runAt time.Time, results []model.ClassificationResult) error
	Close() error
}
