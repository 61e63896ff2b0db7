package merchant

import (
	"strings"

	"github.com/Veraticus/tally/internal/model"
)

// TravelTag is the implicit tag added to transactions located away from home.
const TravelTag = "travel"

// TravelDetector assigns the implicit travel tag based on a transaction's
// location code relative to the configured home locations. It only ever adds
// a tag; merchant and category assignment are untouched.
type TravelDetector struct {
	home map[string]struct{}
}

// NewTravelDetector creates a detector with the given home location codes.
// When none are configured, use DetectHome to infer one from the batch first.
func NewTravelDetector(homeLocations []string) *TravelDetector {
	home := make(map[string]struct{}, len(homeLocations))
	for _, loc := range homeLocations {
		loc = strings.ToUpper(strings.TrimSpace(loc))
		if loc != "" {
			home[loc] = struct{}{}
		}
	}
	return &TravelDetector{home: home}
}

// IsTravel reports whether a location code represents spending away from
// home. Domestic-state-like 2-letter codes and longer international codes are
// treated uniformly: any present, non-empty code outside the home set counts.
func (d *TravelDetector) IsTravel(location string) bool {
	location = strings.ToUpper(strings.TrimSpace(location))
	if location == "" {
		return false
	}
	_, isHome := d.home[location]
	return !isHome
}

// DetectHome infers a home location as the most frequent location code across
// the batch. Returns "" when no transaction carries a location.
func DetectHome(txns []model.Transaction) string {
	counts := make(map[string]int)
	for _, t := range txns {
		loc := strings.ToUpper(strings.TrimSpace(t.Location))
		if loc != "" {
			counts[loc]++
		}
	}

	var best string
	var bestCount int
	for loc, n := range counts {
		// Tie-break lexically so detection is deterministic.
		if n > bestCount || (n == bestCount && loc < best) {
			best, bestCount = loc, n
		}
	}
	return best
}
