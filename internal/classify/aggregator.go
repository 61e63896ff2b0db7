// Package classify groups matched transactions into merchant aggregates and
// assigns each merchant a spending-pattern classification.
package classify

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// Aggregation is the output of one aggregation pass: the merchant buckets
// plus the calendar span of the full dataset, which classification needs for
// the active-month ratio.
type Aggregation struct {
	Merchants   map[string]*model.Merchant
	TotalMonths int
}

// Aggregate groups match results by merchant id and builds each merchant's
// per-calendar-month totals and counts. Aggregation is commutative (sums and
// counts only), so input order never affects the result. When multiple rules
// map to the same merchant id, the last-applied category wins and tag sets
// are unioned, so an implicit travel tag on any transaction sticks to the
// merchant.
func Aggregate(results []model.MatchResult) (*Aggregation, error) {
	if len(results) == 0 {
		return nil, common.ErrNoTransactions
	}

	merchants := make(map[string]*model.Merchant)
	var earliest, latest time.Time

	for _, r := range results {
		if r.MerchantID == "" {
			return nil, common.NewInvariantError("transaction-has-merchant",
				fmt.Sprintf("transaction %q resolved to no merchant", r.Transaction.RawDescription))
		}

		m, ok := merchants[r.MerchantID]
		if !ok {
			m = &model.Merchant{
				ID:            r.MerchantID,
				Name:          r.Merchant,
				MonthlyTotals: make(map[string]decimal.Decimal),
				MonthlyCounts: make(map[string]int),
			}
			merchants[r.MerchantID] = m
		}

		m.Category = r.Category
		m.Subcategory = r.Subcategory
		m.Tags = mergeTags(m.Tags, r.Tags)

		txn := r.Transaction
		month := txn.MonthKey()
		m.Transactions = append(m.Transactions, txn)
		m.MonthlyTotals[month] = m.MonthlyTotals[month].Add(txn.Amount)
		m.MonthlyCounts[month]++
		m.Total = m.Total.Add(txn.Amount)

		if earliest.IsZero() || txn.Date.Before(earliest) {
			earliest = txn.Date
		}
		if latest.IsZero() || txn.Date.After(latest) {
			latest = txn.Date
		}
	}

	for id, m := range merchants {
		if len(m.Transactions) == 0 {
			return nil, common.NewInvariantError("merchant-has-transactions",
				fmt.Sprintf("merchant %q aggregated zero transactions", id))
		}
	}

	return &Aggregation{
		Merchants:   merchants,
		TotalMonths: monthSpan(earliest, latest),
	}, nil
}

// Sorted returns the merchants ordered by total spend descending, ties broken
// by id so output is stable across runs.
func (a *Aggregation) Sorted() []*model.Merchant {
	merchants := make([]*model.Merchant, 0, len(a.Merchants))
	for _, m := range a.Merchants {
		merchants = append(merchants, m)
	}
	sort.Slice(merchants, func(i, j int) bool {
		if !merchants[i].Total.Equal(merchants[j].Total) {
			return merchants[i].Total.GreaterThan(merchants[j].Total)
		}
		return merchants[i].ID < merchants[j].ID
	})
	return merchants
}

// monthSpan counts calendar months between two dates, inclusive.
func monthSpan(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}

func mergeTags(existing, incoming []string) []string {
	merged := existing
	for _, tag := range incoming {
		found := false
		for _, t := range merged {
			if t == tag {
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, tag)
		}
	}
	return merged
}
