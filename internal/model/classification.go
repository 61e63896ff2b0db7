package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind is the spending-pattern classification assigned to a merchant.
type Kind string

// Classification kinds. Every merchant resolves to exactly one.
const (
	KindMonthly  Kind = "monthly"
	KindAnnual   Kind = "annual"
	KindVariable Kind = "variable"
	KindTravel   Kind = "travel"
	KindExcluded Kind = "excluded"
)

// TraceEntry is one step of the classification decision trace, built inline
// as each check executes.
type TraceEntry struct {
	Check  string
	Passed bool
	Detail string
}

// String renders the entry in display form, e.g. "✓ monthly: active in 6/8 months".
func (e TraceEntry) String() string {
	mark := "✗"
	if e.Passed {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s: %s", mark, e.Check, e.Detail)
}

// ClassificationResult is the per-merchant output of the temporal
// classification engine.
type ClassificationResult struct {
	Merchant         *Merchant
	Kind             Kind
	ExcludedReason   string  // For excluded merchants: income, transfer or investment
	ActiveMonthRatio float64 // active months / total dataset months
	CV               float64 // Coefficient of variation of the monthly totals
	Consistent       bool    // CV below the consistency bound (monthly kinds only)
	TypicalMonthly   decimal.Decimal
	Trace            []TraceEntry
}

// AddTrace appends a decision step; called inline as each check executes.
func (c *ClassificationResult) AddTrace(check string, passed bool, detail string) {
	c.Trace = append(c.Trace, TraceEntry{Check: check, Passed: passed, Detail: detail})
}

// TraceLines renders the decision trace for direct display.
func (c *ClassificationResult) TraceLines() []string {
	lines := make([]string, len(c.Trace))
	for i, e := range c.Trace {
		lines[i] = e.String()
	}
	return lines
}
