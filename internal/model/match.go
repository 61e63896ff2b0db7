package model

import "strings"

// Sentinel values for transactions no rule matched.
const (
	UnknownMerchant = "Unknown"
	UnknownCategory = "Unknown"
)

// TagProvenance records which rule contributed a tag to a composite tag set.
type TagProvenance struct {
	Tag     string
	Pattern string // Pattern text of the contributing rule; "travel-detection" for the implicit tag
}

// MatchResult is the per-transaction output of the matching engine. Rule is
// nil when no rule matched and the transaction resolved to Unknown.
type MatchResult struct {
	Rule        *Rule
	Transaction Transaction
	MerchantID  string // Canonical merchant key (lower-cased display name)
	Merchant    string // Display name
	Category    string
	Subcategory string
	Tags        []string
	Provenance  []TagProvenance
	Explanation string // Human-readable description of which rule fired and why
}

// Matched reports whether a rule resolved this transaction.
func (r MatchResult) Matched() bool {
	return r.Rule != nil
}

// HasTag reports whether the resolved tag set contains tag (case-insensitive).
func (r MatchResult) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// MerchantKey canonicalizes a merchant display name into an aggregation key.
func MerchantKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
