// Package discover proposes categorization rules for transactions no
// existing rule matched. Its output is advisory only; it never mutates the
// rule set.
package discover

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/merchant"
	"github.com/Veraticus/tally/internal/model"
)

// maxExamples caps the example transactions carried per suggestion.
const maxExamples = 3

// Suggestion is one proposed rule for a cluster of unmatched transactions.
type Suggestion struct {
	Pattern    string // Suggested regex, escaped prefix words joined by \s*
	Merchant   string // Suggested display name, title-cased
	Count      int
	TotalSpend decimal.Decimal
	Examples   []model.Transaction
}

var (
	trailingNumbers = regexp.MustCompile(`\s+\d{4,}.*$`)
	trailingState   = regexp.MustCompile(`\s+[A-Z]{2}$`)
	trailingZip     = regexp.MustCompile(`\s+\d{5}$`)
	storeNumber     = regexp.MustCompile(`\s+#\d+`)
	regexSpecials   = regexp.MustCompile(`([.*+?^${}()|[\]\\])`)
)

// Suggest clusters unmatched transactions by normalized description and
// proposes a pattern and merchant name per cluster, ordered by total spend
// descending.
func Suggest(unmatched []model.MatchResult) []Suggestion {
	type group struct {
		key   string
		count int
		total decimal.Decimal
		txns  []model.Transaction
	}

	groups := make(map[string]*group)
	for _, r := range unmatched {
		if r.Matched() {
			continue
		}
		txn := r.Transaction
		key := normalizeKey(txn.CleanedDescription)
		if key == "" {
			key = normalizeKey(txn.RawDescription)
		}
		if key == "" {
			continue
		}

		g, ok := groups[key]
		if !ok {
			g = &group{key: key}
			groups[key] = g
		}
		g.count++
		g.total = g.total.Add(txn.Amount.Abs())
		g.txns = append(g.txns, txn)
	}

	suggestions := make([]Suggestion, 0, len(groups))
	for _, g := range groups {
		examples := g.txns
		if len(examples) > maxExamples {
			examples = examples[:maxExamples]
		}
		suggestions = append(suggestions, Suggestion{
			Pattern:    SuggestPattern(g.key),
			Merchant:   merchant.ExtractName(g.key),
			Count:      g.count,
			TotalSpend: g.total,
			Examples:   examples,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if !suggestions[i].TotalSpend.Equal(suggestions[j].TotalSpend) {
			return suggestions[i].TotalSpend.GreaterThan(suggestions[j].TotalSpend)
		}
		return suggestions[i].Pattern < suggestions[j].Pattern
	})

	return suggestions
}

// normalizeKey strips the trailing tokens that vary between otherwise
// identical descriptions: store IDs, zip codes, location codes.
func normalizeKey(description string) string {
	key := strings.ToUpper(merchant.CleanDescription(description))
	key = trailingNumbers.ReplaceAllString(key, "")
	key = trailingState.ReplaceAllString(key, "")
	key = trailingZip.ReplaceAllString(key, "")
	key = storeNumber.ReplaceAllString(key, "")
	return strings.TrimSpace(key)
}

// SuggestPattern builds a rule pattern from a normalized description: the
// first significant words, regex-escaped, joined so variable whitespace still
// matches.
func SuggestPattern(key string) string {
	escaped := regexSpecials.ReplaceAllString(key, `\$1`)
	words := strings.Fields(escaped)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, `\s*`)
}
