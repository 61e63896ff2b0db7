package classify

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// Thresholds controls the classification decision points. Zero values fall
// back to the defaults.
type Thresholds struct {
	BillRatio       float64 // Active-month ratio at or above which a merchant is monthly
	MinActiveMonths int     // Absolute floor of active months for the monthly verdict
	ConsistencyCV   float64 // CV below which a monthly merchant is reported consistent
}

// Default thresholds.
const (
	DefaultBillRatio       = 0.5
	DefaultMinActiveMonths = 3
	DefaultConsistencyCV   = 0.3
)

// Tags that exclude a merchant from periodicity analysis entirely.
var excludedTags = []string{"income", "transfer", "investment"}

// TravelCategory is the category name that short-circuits to the travel kind.
const TravelCategory = "Travel"

// annualAllowList holds (category, subcategory) pairs known to recur yearly.
var annualAllowList = map[[2]string]bool{
	{"Bills", "Insurance"}:      true,
	{"Bills", "Tax"}:            true,
	{"Bills", "Membership"}:     true,
	{"Family", "Charity"}:       true,
	{"Charity", "Donation"}:     true,
	{"Subscriptions", "Annual"}: true,
}

// Classifier assigns each merchant exactly one spending-pattern kind via an
// ordered sequence of checks. Each check either short-circuits to a verdict
// or falls through; every step is recorded in the decision trace as it runs.
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier creates a classifier, applying defaults for unset thresholds.
func NewClassifier(t Thresholds) *Classifier {
	if t.BillRatio == 0 {
		t.BillRatio = DefaultBillRatio
	}
	if t.MinActiveMonths == 0 {
		t.MinActiveMonths = DefaultMinActiveMonths
	}
	if t.ConsistencyCV == 0 {
		t.ConsistencyCV = DefaultConsistencyCV
	}
	return &Classifier{thresholds: t}
}

// Classify runs the decision sequence for one merchant. totalMonths is the
// calendar span of the full dataset. The result always lands on exactly one
// kind; an empty merchant is a contract breach, not a classification.
func (c *Classifier) Classify(m *model.Merchant, totalMonths int) (model.ClassificationResult, error) {
	if len(m.Transactions) == 0 {
		return model.ClassificationResult{}, common.NewInvariantError("merchant-has-transactions",
			fmt.Sprintf("merchant %q has no transactions", m.ID))
	}

	result := model.ClassificationResult{Merchant: m}

	// 1. Excluded: income/transfer/investment merchants are never evaluated
	// for periodicity.
	if reason := excludedReason(m); reason != "" {
		result.AddTrace("excluded", true, fmt.Sprintf("tagged %s", reason))
		result.Kind = model.KindExcluded
		result.ExcludedReason = reason
		return result, nil
	}
	result.AddTrace("excluded", false, fmt.Sprintf("tags [%s] include none of income/transfer/investment", strings.Join(m.Tags, " ")))

	// 2. Travel, by explicit category or the implicit location tag.
	if m.Category == TravelCategory || m.HasTag("travel") {
		detail := "category is " + TravelCategory
		if m.Category != TravelCategory {
			detail = "carries the travel tag"
		}
		result.AddTrace("travel", true, detail)
		result.Kind = model.KindTravel
		return result, nil
	}
	result.AddTrace("travel", false, fmt.Sprintf("category %s is not %s and no travel tag", m.Category, TravelCategory))

	// 3. Annual: allow-listed category pair with yearly spacing.
	if annualAllowList[[2]string{m.Category, m.Subcategory}] {
		if spacedYearly(m.Transactions) {
			result.AddTrace("annual", true, fmt.Sprintf("%s/%s recurs yearly (%d transaction(s) spaced >= 11 months)",
				m.Category, m.Subcategory, len(m.Transactions)))
			result.Kind = model.KindAnnual
			return result, nil
		}
		result.AddTrace("annual", false, fmt.Sprintf("%s/%s is an annual category but transactions are closer than 11 months",
			m.Category, m.Subcategory))
	} else {
		result.AddTrace("annual", false, fmt.Sprintf("%s/%s is not an annual category", m.Category, m.Subcategory))
	}

	// 4. Monthly: active in at least half the observed months, minimum 3.
	active := m.ActiveMonths()
	ratio := 0.0
	if totalMonths > 0 {
		ratio = float64(active) / float64(totalMonths)
	}
	result.ActiveMonthRatio = ratio
	result.TypicalMonthly = typicalMonthly(m, active)

	if ratio >= c.thresholds.BillRatio && active >= c.thresholds.MinActiveMonths {
		result.CV = coefficientOfVariation(m)
		result.Consistent = result.CV < c.thresholds.ConsistencyCV
		label := "consistent"
		if !result.Consistent {
			label = "irregular monthly"
		}
		result.AddTrace("monthly", true, fmt.Sprintf("active in %d/%d months (ratio %.2f), CV %.2f (%s)",
			active, totalMonths, ratio, result.CV, label))
		result.Kind = model.KindMonthly
		return result, nil
	}
	result.AddTrace("monthly", false, fmt.Sprintf("active in %d/%d months (ratio %.2f) below bill threshold %.2f (min %d months)",
		active, totalMonths, ratio, c.thresholds.BillRatio, c.thresholds.MinActiveMonths))

	// 5. Everything else is ad-hoc spending.
	result.AddTrace("variable", true, "no periodic pattern detected")
	result.Kind = model.KindVariable
	return result, nil
}

// ClassifyAll classifies every merchant of an aggregation, ordered by total
// spend descending.
func (c *Classifier) ClassifyAll(agg *Aggregation) ([]model.ClassificationResult, error) {
	merchants := agg.Sorted()
	results := make([]model.ClassificationResult, 0, len(merchants))
	for _, m := range merchants {
		r, err := c.Classify(m, agg.TotalMonths)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func excludedReason(m *model.Merchant) string {
	for _, tag := range excludedTags {
		if m.HasTag(tag) {
			return tag
		}
	}
	return ""
}

// spacedYearly reports whether the transactions qualify for the annual kind:
// a single transaction, or every consecutive pair at least 11 months apart.
func spacedYearly(txns []model.Transaction) bool {
	if len(txns) == 1 {
		return true
	}

	dates := make([]time.Time, len(txns))
	for i, t := range txns {
		dates[i] = t.Date
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	for i := 1; i < len(dates); i++ {
		if monthSpan(dates[i-1], dates[i])-1 < 11 {
			return false
		}
	}
	return true
}

// coefficientOfVariation measures billing consistency over the monthly
// totals: stddev / mean. 0 means perfectly consistent.
func coefficientOfVariation(m *model.Merchant) float64 {
	totals := make([]float64, 0, len(m.MonthlyTotals))
	for _, v := range m.MonthlyTotals {
		totals = append(totals, v.InexactFloat64())
	}
	if len(totals) < 2 {
		return 0
	}

	var sum float64
	for _, v := range totals {
		sum += v
	}
	mean := sum / float64(len(totals))
	if mean == 0 {
		return 0
	}

	var variance float64
	for _, v := range totals {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(totals))

	return math.Sqrt(variance) / mean
}

// typicalMonthly estimates the recurring charge: total spend averaged over
// active months only.
func typicalMonthly(m *model.Merchant, activeMonths int) decimal.Decimal {
	if activeMonths == 0 {
		return decimal.Zero
	}
	return m.Total.Div(decimal.NewFromInt(int64(activeMonths))).Round(2)
}
