// Package engine orchestrates the analysis pipeline: normalization, rule
// matching, travel tagging, aggregation, temporal classification and rule
// discovery over one batch of transactions.
package engine

import (
	"log/slog"
	"time"

	"github.com/Veraticus/tally/internal/classify"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/discover"
	"github.com/Veraticus/tally/internal/merchant"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/rule"
)

// Config holds the explicit inputs that would otherwise be ambient state:
// the run's "now" for relative date modifiers and the home locations for
// travel detection. Both are threaded through so a fixed input batch always
// produces the same output.
type Config struct {
	Now           time.Time
	HomeLocations []string
	Thresholds    classify.Thresholds
}

// Analysis is the complete output of one run.
type Analysis struct {
	Results         []model.MatchResult
	Classifications []model.ClassificationResult
	Suggestions     []discover.Suggestion
	Unmatched       []model.MatchResult
	HomeLocation    string // Auto-detected home, "" when configured explicitly
	TotalMonths     int
}

// Engine runs the batch pipeline. The rule set is compiled once at
// construction and treated as read-only for the duration of a run.
type Engine struct {
	matcher    *rule.Matcher
	classifier *classify.Classifier
	cfg        Config
}

// New compiles the rule list and builds an engine. Rule compilation is
// fail-fast: an invalid rule aborts before any transaction is processed.
func New(rules []model.Rule, cfg Config) (*Engine, error) {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}

	matcher, err := rule.NewMatcher(rules, cfg.Now)
	if err != nil {
		return nil, err
	}

	return &Engine{
		matcher:    matcher,
		classifier: classify.NewClassifier(cfg.Thresholds),
		cfg:        cfg,
	}, nil
}

// Analyze runs the full pipeline over one batch. The batch is processed
// synchronously; matching is per-transaction independent and aggregation is
// commutative, so results do not depend on input order.
func (e *Engine) Analyze(txns []model.Transaction) (*Analysis, error) {
	if len(txns) == 0 {
		return nil, common.ErrNoTransactions
	}

	normalized := normalize(txns)

	home := e.cfg.HomeLocations
	detected := ""
	if len(home) == 0 {
		if detected = merchant.DetectHome(normalized); detected != "" {
			home = []string{detected}
			slog.Debug("auto-detected home location", "location", detected)
		}
	}
	travel := merchant.NewTravelDetector(home)

	analysis := &Analysis{HomeLocation: detected}
	for _, txn := range normalized {
		result := e.matcher.Match(txn)

		// The travel tag is additive: it never changes the merchant or
		// category a rule assigned.
		if travel.IsTravel(txn.Location) && !result.HasTag(merchant.TravelTag) {
			result.Tags = append(result.Tags, merchant.TravelTag)
			result.Provenance = append(result.Provenance, model.TagProvenance{
				Tag:     merchant.TravelTag,
				Pattern: "travel-detection",
			})
		}

		analysis.Results = append(analysis.Results, result)
		if !result.Matched() {
			analysis.Unmatched = append(analysis.Unmatched, result)
		}
	}

	agg, err := classify.Aggregate(analysis.Results)
	if err != nil {
		return nil, err
	}
	analysis.TotalMonths = agg.TotalMonths

	analysis.Classifications, err = e.classifier.ClassifyAll(agg)
	if err != nil {
		return nil, err
	}

	analysis.Suggestions = discover.Suggest(analysis.Unmatched)

	slog.Info("analysis complete",
		"transactions", len(txns),
		"merchants", len(agg.Merchants),
		"unmatched", len(analysis.Unmatched),
		"months", agg.TotalMonths)

	return analysis, nil
}

// normalize fills in the derived transaction fields ingestion may have left
// empty: the cleaned description and the trailing location code.
func normalize(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		if t.CleanedDescription == "" {
			t.CleanedDescription = merchant.CleanDescription(t.RawDescription)
		}
		if t.Location == "" {
			t.Location = merchant.ExtractLocation(t.RawDescription)
		}
		out[i] = t
	}
	return out
}
