package model

// RuleSource indicates where a categorization rule came from.
type RuleSource string

const (
	// RuleSourceUser indicates a rule loaded from the user's rule file.
	RuleSourceUser RuleSource = "user"
	// RuleSourceBuiltin indicates a rule from the built-in baseline set.
	RuleSourceBuiltin RuleSource = "builtin"
)

// Rule is one ordered entry of the categorization rule list. Pattern holds the
// raw text as authored, including any inline [amount...]/[date...]/[month=N]
// modifier clauses; compilation happens in the rule package.
type Rule struct {
	Pattern     string
	Merchant    string
	Category    string
	Subcategory string
	Tags        []string
	Source      RuleSource
	Line        int // Position in the rule file, for diagnostics
}
