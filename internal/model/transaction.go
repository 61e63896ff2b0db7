// Package model defines the core data structures for the tally application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single normalized financial transaction from any source.
// The sign convention is fixed upstream: positive amounts are money out.
type Transaction struct {
	Date               time.Time
	ID                 string
	RawDescription     string // Description as it appeared on the statement
	CleanedDescription string // Description after processor-prefix stripping
	Location           string // Optional 2+ letter region/country code
	Source             string // Originating data feed (e.g. "amex", "boa", "ofx")
	Hash               string
	Amount             decimal.Decimal
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount.StringFixed(2),
		t.RawDescription,
		t.Source)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// MonthKey returns the calendar month bucket for aggregation, e.g. "2025-03".
func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}
