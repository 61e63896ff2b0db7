package rule

import (
	"fmt"
	"time"

	"github.com/Veraticus/tally/internal/merchant"
	"github.com/Veraticus/tally/internal/model"
)

// Matcher evaluates transactions against an ordered, immutable rule list.
// Order is the only priority mechanism: the first rule whose regex matches
// the cleaned description AND whose modifier predicates all pass wins, and no
// further rules are evaluated. Rule authors order specific patterns before
// general ones; there is no specificity scoring.
type Matcher struct {
	rules []*CompiledRule
	now   time.Time
}

// NewMatcher compiles the rule list in declaration order. Compilation is
// fail-fast: the first invalid rule aborts the whole load. The now argument
// anchors relative date modifiers ([date:lastNdays]) for the run.
func NewMatcher(rules []model.Rule, now time.Time) (*Matcher, error) {
	compiled := make([]*CompiledRule, 0, len(rules))
	for _, r := range rules {
		cr, err := Compile(r)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, cr)
	}

	return &Matcher{rules: compiled, now: now}, nil
}

// Rules returns the compiled rules in evaluation order.
func (m *Matcher) Rules() []*CompiledRule {
	return m.rules
}

// Match resolves a single transaction. The result depends only on the rule
// list and the transaction itself, never on other transactions. A transaction
// no rule matches resolves to the Unknown sentinel with a display name
// derived from its description.
func (m *Matcher) Match(txn model.Transaction) model.MatchResult {
	for _, r := range m.rules {
		if !r.MatchesDescription(txn.CleanedDescription) {
			continue
		}
		if !r.MatchesConditions(txn.Amount, txn.Date, m.now) {
			continue
		}

		return m.buildResult(txn, r)
	}

	return model.MatchResult{
		Transaction: txn,
		MerchantID:  model.MerchantKey(merchant.ExtractName(txn.RawDescription)),
		Merchant:    merchant.ExtractName(txn.RawDescription),
		Category:    model.UnknownCategory,
		Subcategory: model.UnknownCategory,
		Explanation: "no rule matched; merchant derived from description",
	}
}

func (m *Matcher) buildResult(txn model.Transaction, r *CompiledRule) model.MatchResult {
	name := r.Merchant
	if name == "" {
		name = merchant.ExtractName(txn.RawDescription)
	}

	tags := make([]string, 0, len(r.Tags))
	provenance := make([]model.TagProvenance, 0, len(r.Tags))
	for _, tag := range r.Tags {
		tags = append(tags, tag)
		provenance = append(provenance, model.TagProvenance{Tag: tag, Pattern: r.Pattern})
	}

	rule := r.Rule
	return model.MatchResult{
		Rule:        &rule,
		Transaction: txn,
		MerchantID:  model.MerchantKey(name),
		Merchant:    name,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Tags:        tags,
		Provenance:  provenance,
		Explanation: explain(r),
	}
}

func explain(r *CompiledRule) string {
	s := fmt.Sprintf("matched pattern %q (%s rule)", r.Parsed.Regex, r.Source)
	if r.Line > 0 {
		s = fmt.Sprintf("matched pattern %q (%s rule, line %d)", r.Parsed.Regex, r.Source, r.Line)
	}
	if r.Parsed.HasConditions() {
		s += " with"
		for _, c := range r.Parsed.Amounts {
			s += " " + c.String()
		}
		for _, c := range r.Parsed.Dates {
			s += " " + c.String()
		}
	}
	return s
}
