package model

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Merchant is the aggregation bucket for all transactions resolved to one
// canonical merchant id. Category, subcategory and tags come from the matching
// rules; when multiple rules map to the same merchant the last-applied values
// win, matching rule-authoring expectations.
type Merchant struct {
	ID            string // Lower-cased canonical key
	Name          string // Display name
	Category      string
	Subcategory   string
	Tags          []string
	Transactions  []Transaction
	MonthlyTotals map[string]decimal.Decimal // "2006-01" -> summed amount
	MonthlyCounts map[string]int
	Total         decimal.Decimal
}

// ActiveMonths returns the number of distinct calendar months with at least
// one transaction.
func (m *Merchant) ActiveMonths() int {
	return len(m.MonthlyTotals)
}

// Months returns the merchant's active month keys in ascending order.
func (m *Merchant) Months() []string {
	months := make([]string, 0, len(m.MonthlyTotals))
	for k := range m.MonthlyTotals {
		months = append(months, k)
	}
	sort.Strings(months)
	return months
}

// HasTag reports whether the merchant's tag set contains tag.
func (m *Merchant) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
