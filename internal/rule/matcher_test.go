package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/testutil"
)

func TestMatcher_FirstMatchWins(t *testing.T) {
	rules := []model.Rule{
		testutil.Rule("COSTCO GAS", "Costco Gas", "Auto", "Fuel"),
		testutil.Rule("COSTCO", "Costco", "Food", "Groceries"),
	}
	matcher, err := NewMatcher(rules, testutil.Date(t, "2025-06-15"))
	require.NoError(t, err)

	gas := matcher.Match(testutil.Txn(t, "2025-03-01", "COSTCO GAS #1021", 45.00))
	assert.Equal(t, "Costco Gas", gas.Merchant)
	assert.Equal(t, "Auto", gas.Category)

	warehouse := matcher.Match(testutil.Txn(t, "2025-03-02", "COSTCO WHSE #0482", 230.17))
	assert.Equal(t, "Costco", warehouse.Merchant)
	assert.Equal(t, "Food", warehouse.Category)
}

func TestMatcher_OrderIsTheOnlyPriority(t *testing.T) {
	// A general pattern placed first shadows a more specific one; there is
	// no specificity scoring to rescue a badly ordered file.
	rules := []model.Rule{
		testutil.Rule("COSTCO", "Costco", "Food", "Groceries"),
		testutil.Rule("COSTCO GAS", "Costco Gas", "Auto", "Fuel"),
	}
	matcher, err := NewMatcher(rules, testutil.Date(t, "2025-06-15"))
	require.NoError(t, err)

	got := matcher.Match(testutil.Txn(t, "2025-03-01", "COSTCO GAS #1021", 45.00))
	assert.Equal(t, "Costco", got.Merchant)
}

func TestMatcher_NegativeLookahead(t *testing.T) {
	rules := []model.Rule{
		testutil.Rule("COSTCO(?!.*GAS)", "Costco", "Food", "Groceries"),
	}
	matcher, err := NewMatcher(rules, testutil.Date(t, "2025-06-15"))
	require.NoError(t, err)

	assert.True(t, matcher.Match(testutil.Txn(t, "2025-03-01", "COSTCO WHSE #0482", 230.17)).Matched())
	assert.False(t, matcher.Match(testutil.Txn(t, "2025-03-01", "COSTCO GAS #1021", 45.00)).Matched())
}

func TestMatcher_ModifiersAreANDed(t *testing.T) {
	rules := []model.Rule{
		testutil.Rule("FOO[amount>100][month=12]", "Foo Gifts", "Shopping", "Gifts"),
	}
	matcher, err := NewMatcher(rules, testutil.Date(t, "2025-06-15"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		date    string
		amount  float64
		matched bool
	}{
		{"both conditions satisfied", "2024-12-20", 150, true},
		{"december but too small", "2024-12-20", 80, false},
		{"large but wrong month", "2025-06-01", 150, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matcher.Match(testutil.Txn(t, tt.date, "FOO STORE", tt.amount))
			assert.Equal(t, tt.matched, got.Matched())
		})
	}
}

func TestMatcher_ConditionFailureFallsThrough(t *testing.T) {
	// When the first rule's regex matches but its modifier fails, later
	// rules still get a chance.
	rules := []model.Rule{
		testutil.Rule("COSTCO[amount>200]", "Costco Bulk", "Shopping", "Household"),
		testutil.Rule("COSTCO", "Costco", "Food", "Groceries"),
	}
	matcher, err := NewMatcher(rules, testutil.Date(t, "2025-06-15"))
	require.NoError(t, err)

	small := matcher.Match(testutil.Txn(t, "2025-03-01", "COSTCO WHSE #0482", 52.10))
	assert.Equal(t, "Costco", small.Merchant)

	big := matcher.Match(testutil.Txn(t, "2025-03-01", "COSTCO WHSE #0482", 412.88))
	assert.Equal(t, "Costco Bulk", big.Merchant)
}

func TestMatcher_SearchSemantics(t *testing.T) {
	rules := []model.Rule{
		testutil.Rule("NETFLIX", "Netflix", "Subscriptions", "Streaming"),
		testutil.Rule("^SQ COFFEE$", "Square Coffee", "Food", "Coffee"),
	}
	matcher, err := NewMatcher(rules, testutil.Date(t, "2025-06-15"))
	require.NoError(t, err)

	// Unanchored patterns match anywhere in the description.
	assert.Equal(t, "Netflix", matcher.Match(testutil.Txn(t, "2025-03-01", "PAYMENT TO NETFLIX.COM CA", 15.99)).Merchant)

	// Explicit anchors are honored.
	assert.Equal(t, "Square Coffee", matcher.Match(testutil.Txn(t, "2025-03-01", "SQ COFFEE", 4.50)).Merchant)
	assert.False(t, matcher.Match(testutil.Txn(t, "2025-03-01", "SQ COFFEE ROASTERS", 4.50)).Matched())
}

func TestMatcher_UnmatchedFallsBackToDerivedName(t *testing.T) {
	matcher, err := NewMatcher(nil, testutil.Date(t, "2025-06-15"))
	require.NoError(t, err)

	got := matcher.Match(testutil.Txn(t, "2025-03-01", "MYSTERY SHOP 4411 PORTLAND OR", 19.99))
	assert.False(t, got.Matched())
	assert.Equal(t, model.UnknownCategory, got.Category)
	assert.Equal(t, "Mystery Shop Portland", got.Merchant)
	assert.NotEmpty(t, got.Explanation)
}

func TestMatcher_ResultCarriesProvenance(t *testing.T) {
	rules := []model.Rule{
		testutil.Rule("VANGUARD", "Vanguard", "Finance", "Investing", "investment"),
	}
	matcher, err := NewMatcher(rules, testutil.Date(t, "2025-06-15"))
	require.NoError(t, err)

	got := matcher.Match(testutil.Txn(t, "2025-03-01", "VANGUARD BUY", 500))
	require.True(t, got.Matched())
	assert.True(t, got.HasTag("investment"))
	require.Len(t, got.Provenance, 1)
	assert.Equal(t, "VANGUARD", got.Provenance[0].Pattern)
	assert.Contains(t, got.Explanation, `matched pattern "VANGUARD"`)
	assert.Contains(t, got.Explanation, "line 1")
}

func TestMatcher_IsDeterministic(t *testing.T) {
	rules := []model.Rule{
		testutil.Rule("COSTCO[amount>200]", "Costco Bulk", "Shopping", "Household"),
		testutil.Rule("COSTCO", "Costco", "Food", "Groceries"),
	}
	matcher, err := NewMatcher(rules, testutil.Date(t, "2025-06-15"))
	require.NoError(t, err)

	txn := testutil.Txn(t, "2025-03-01", "COSTCO WHSE #0482", 230.17)
	first := matcher.Match(txn)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, matcher.Match(txn))
	}
}
