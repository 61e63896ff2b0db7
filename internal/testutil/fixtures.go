// Package testutil provides test fixtures for building transactions and
// rules without repeating date/amount plumbing in every test.
package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/model"
)

// Date parses a YYYY-MM-DD test date, failing the test on bad input.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// Txn builds a normalized transaction for tests. The description doubles as
// both the raw and cleaned form; tests exercising the normalizer set them
// separately.
func Txn(t *testing.T, date, description string, amount float64) model.Transaction {
	t.Helper()
	txn := model.Transaction{
		Date:               Date(t, date),
		RawDescription:     description,
		CleanedDescription: description,
		Amount:             decimal.NewFromFloat(amount),
		Source:             "test",
	}
	txn.Hash = txn.GenerateHash()
	txn.ID = txn.Hash[:16]
	return txn
}

// Rule builds a rule list entry with a synthetic line number.
func Rule(pattern, merchant, category, subcategory string, tags ...string) model.Rule {
	return model.Rule{
		Pattern:     pattern,
		Merchant:    merchant,
		Category:    category,
		Subcategory: subcategory,
		Tags:        tags,
		Source:      model.RuleSourceUser,
		Line:        1,
	}
}

// MonthlySeries builds one transaction per given month (day 15) for a single
// merchant description, with the matching amounts.
func MonthlySeries(t *testing.T, description string, months []string, amounts []float64) []model.Transaction {
	t.Helper()
	if len(months) != len(amounts) {
		t.Fatalf("months and amounts length mismatch: %d != %d", len(months), len(amounts))
	}

	txns := make([]model.Transaction, len(months))
	for i, m := range months {
		txns[i] = Txn(t, m+"-15", description, amounts[i])
	}
	return txns
}
