package rule

import "github.com/Veraticus/tally/internal/model"

// BuiltinRules returns the baseline rule set appended after the user's rules,
// so any user rule shadows these. Merchants left empty fall back to the name
// derived from the transaction description.
func BuiltinRules() []model.Rule {
	rules := []model.Rule{
		// Exclusion tags first: these keep payroll, transfers and brokerage
		// activity out of the spending analysis.
		{Pattern: `\b(PAYROLL|DIRECT\s*DEP|DIRECTDEP|DIR\s*DEP|SALARY)\b`, Category: "Income", Subcategory: "Salary", Tags: []string{"income"}},
		{Pattern: `\b(INTEREST\s*(EARNED|PAYMENT|PAID)|DIVIDEND)\b`, Category: "Income", Subcategory: "Interest", Tags: []string{"income"}},
		{Pattern: `\b(TAX\s*REF|IRS\s*TREAS|STATE\s*TAX\s*REF)\b`, Category: "Income", Subcategory: "Tax Refund", Tags: []string{"income"}},
		{Pattern: `\b(TRANSFER|ZELLE|VENMO|ONLINE\s*PMT|PAYMENT\s*THANK\s*YOU|AUTOPAY)\b`, Category: "Finance", Subcategory: "Transfer", Tags: []string{"transfer"}},
		{Pattern: `\b(VANGUARD|FIDELITY|SCHWAB|ROBINHOOD|BROKERAGE|401K)\b`, Category: "Finance", Subcategory: "Investing", Tags: []string{"investment"}},

		{Pattern: `NETFLIX`, Merchant: "Netflix", Category: "Subscriptions", Subcategory: "Streaming"},
		{Pattern: `SPOTIFY`, Merchant: "Spotify", Category: "Subscriptions", Subcategory: "Music"},
		{Pattern: `\b(AMZN|AMAZON)\b`, Merchant: "Amazon", Category: "Shopping", Subcategory: "Online"},

		{Pattern: `\b(DELTA\s*AIR|UNITED\s*AIR|ALASKA\s*AIR|SOUTHWEST\s*AIR|AMERICAN\s*AIR)\b`, Category: "Travel", Subcategory: "Flights"},
		{Pattern: `\b(AIRBNB|MARRIOTT|HILTON|HYATT)\b`, Category: "Travel", Subcategory: "Lodging"},

		{Pattern: `COSTCO\s*GAS`, Merchant: "Costco Gas", Category: "Auto", Subcategory: "Fuel"},
		{Pattern: `\b(SHELL\s*OIL|CHEVRON|EXXON|ARCO)\b`, Category: "Auto", Subcategory: "Fuel"},
		{Pattern: `\b(WHOLE\s*FOODS|WHOLEFDS|TRADER\s*JOE'?S?|SAFEWAY|KROGER|COSTCO\s*WHSE)\b`, Category: "Food", Subcategory: "Groceries"},
		{Pattern: `\b(UBER|LYFT)\b(?!.*EATS)`, Category: "Transport", Subcategory: "Rideshare"},
	}

	for i := range rules {
		rules[i].Source = model.RuleSourceBuiltin
	}
	return rules
}
