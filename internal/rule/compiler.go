package rule

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// modifierBlock recognizes one trailing [keyword...] clause. Only the known
// keywords count; anything else (regex character classes like [A-Z]) stays in
// the pattern.
var modifierBlock = regexp.MustCompile(`\[(amount|date|month)([^\]]*)\]$`)

// ParsedPattern is a rule pattern split into its base regex text and the
// structured modifier predicates extracted from trailing bracket clauses.
type ParsedPattern struct {
	Regex   string
	Amounts []AmountCondition
	Dates   []DateCondition
}

// HasConditions reports whether any modifier predicate was extracted.
func (p ParsedPattern) HasConditions() bool {
	return len(p.Amounts) > 0 || len(p.Dates) > 0
}

// ParsePattern splits raw pattern text into the leading regex and zero or
// more modifier clauses, scanning backwards from the end. Parsing stops at
// the first trailing clause that is not a recognized modifier; a malformed
// keyword clause (e.g. a non-numeric amount bound) is an error.
func ParsePattern(pattern string) (ParsedPattern, error) {
	parsed := ParsedPattern{Regex: pattern}
	if pattern == "" {
		parsed.Regex = ""
		return parsed, nil
	}

	remaining := pattern
	for {
		m := modifierBlock.FindStringSubmatchIndex(remaining)
		if m == nil {
			break
		}

		keyword := remaining[m[2]:m[3]]
		value := remaining[m[4]:m[5]]

		switch keyword {
		case "amount":
			cond, err := parseAmountModifier(value)
			if err != nil {
				return ParsedPattern{}, err
			}
			parsed.Amounts = append([]AmountCondition{cond}, parsed.Amounts...)
		case "date":
			cond, err := parseDateModifier(value)
			if err != nil {
				return ParsedPattern{}, err
			}
			parsed.Dates = append([]DateCondition{cond}, parsed.Dates...)
		case "month":
			cond, err := parseMonthModifier(value)
			if err != nil {
				return ParsedPattern{}, err
			}
			parsed.Dates = append([]DateCondition{cond}, parsed.Dates...)
		}

		remaining = remaining[:m[0]]
	}

	parsed.Regex = remaining
	return parsed, nil
}

// CompiledRule is a rule ready for matching: a case-insensitive regex plus
// the ordered predicate list, all combined with AND.
type CompiledRule struct {
	model.Rule
	re     *regexp2.Regexp
	Parsed ParsedPattern
}

// Compile parses a rule's pattern and compiles its regex. The rule dialect
// supports negative lookahead, e.g. COSTCO(?!.*GAS), so compilation uses
// regexp2 rather than the stdlib RE2 engine.
func Compile(r model.Rule) (*CompiledRule, error) {
	parsed, err := ParsePattern(r.Pattern)
	if err != nil {
		return nil, common.NewRuleLoadError(r.Line, r.Pattern, err)
	}

	re, err := regexp2.Compile(parsed.Regex, regexp2.IgnoreCase)
	if err != nil {
		return nil, common.NewRuleLoadError(r.Line, r.Pattern, fmt.Errorf("invalid regex %q: %w", parsed.Regex, err))
	}

	return &CompiledRule{Rule: r, re: re, Parsed: parsed}, nil
}

// MatchesDescription tests the compiled regex against a cleaned description
// using search semantics: the pattern anchors only where it contains ^ or $.
func (r *CompiledRule) MatchesDescription(description string) bool {
	ok, err := r.re.MatchString(description)
	if err != nil {
		// regexp2 only errors on match timeout; none is configured.
		return false
	}
	return ok
}

// MatchesConditions evaluates every modifier predicate against the
// transaction's amount and date. All must pass.
func (r *CompiledRule) MatchesConditions(amount decimal.Decimal, date, now time.Time) bool {
	for _, cond := range r.Parsed.Amounts {
		if !cond.Matches(amount) {
			return false
		}
	}
	for _, cond := range r.Parsed.Dates {
		if !cond.Matches(date, now) {
			return false
		}
	}
	return true
}
