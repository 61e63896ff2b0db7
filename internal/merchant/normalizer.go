// Package merchant provides description normalization and travel detection
// for raw bank and credit card transaction descriptions.
package merchant

import (
	"regexp"
	"strings"
)

// Known payment-processor and point-of-sale prefixes that obscure the actual
// merchant. Stripped before matching and before deriving display names.
var processorPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^APLPAY\s+`),         // Apple Pay
	regexp.MustCompile(`(?i)^SQ\s*\*`),           // Square
	regexp.MustCompile(`(?i)^TST\*\s*`),          // Toast POS
	regexp.MustCompile(`(?i)^SP\s+`),             // Shopify
	regexp.MustCompile(`(?i)^PY\s*\*`),           // PayPal merchant
	regexp.MustCompile(`(?i)^PP\s*\*`),           // PayPal
	regexp.MustCompile(`(?i)^GOOGLE\s*\*`),       // Google Pay
	regexp.MustCompile(`(?i)^BT\s*\*?\s*DD\s*\*?`), // DoorDash via various processors
}

// Statement suffixes added by some banks (ID numbers, confirmation codes).
var statementSuffixes = []*regexp.Regexp{
	regexp.MustCompile(`\s+DES:.*$`),
	regexp.MustCompile(`\s+ID:.*$`),
	regexp.MustCompile(`\s+INDN:.*$`),
	regexp.MustCompile(`\s+CO ID:.*$`),
	regexp.MustCompile(`(?i)\s+Confirmation#.*$`),
}

var (
	trailingStateCode = regexp.MustCompile(`\s{2,}[A-Z]{2}$`)
	multiSpace        = regexp.MustCompile(`\s+`)
	nonAlpha          = regexp.MustCompile(`[^A-Za-z\s]`)
	trailingLocation  = regexp.MustCompile(`\s+([A-Z]{2})\s*$`)
)

// CleanDescription strips processor prefixes, statement suffixes and
// whitespace noise from a raw description. Purely textual; never inspects
// amount or date.
func CleanDescription(description string) string {
	cleaned := description

	for _, prefix := range processorPrefixes {
		cleaned = prefix.ReplaceAllString(cleaned, "")
	}

	for _, suffix := range statementSuffixes {
		cleaned = suffix.ReplaceAllString(cleaned, "")
	}

	cleaned = trailingStateCode.ReplaceAllString(cleaned, "")
	cleaned = multiSpace.ReplaceAllString(cleaned, " ")

	return strings.TrimSpace(cleaned)
}

// ExtractName derives a readable display name from a description. Used as
// fallback when no rule supplies an explicit merchant name.
func ExtractName(description string) string {
	cleaned := CleanDescription(description)

	words := strings.Fields(nonAlpha.ReplaceAllString(cleaned, " "))
	if len(words) > 3 {
		words = words[:3]
	}
	if len(words) == 0 {
		return "Unknown"
	}

	return titleCase(strings.Join(words, " "))
}

// ExtractLocation pulls a trailing 2-letter state/country code from a
// description, or "" when none is present.
func ExtractLocation(description string) string {
	if m := trailingLocation.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
