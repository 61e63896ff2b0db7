package rule

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/Veraticus/tally/internal/model"
)

// ruleRow is the CSV shape of one rule file entry.
// Format: Pattern,Merchant,Category,Subcategory[,Tags] with Tags
// semicolon-separated. Lines starting with # are comments.
type ruleRow struct {
	Pattern     string `csv:"Pattern"`
	Merchant    string `csv:"Merchant"`
	Category    string `csv:"Category"`
	Subcategory string `csv:"Subcategory"`
	Tags        string `csv:"Tags"`
}

// LoadFile reads an ordered rule list from a CSV rule file. Row order is
// preserved; it defines match priority. Rows with an empty pattern are
// skipped. The returned rules are not yet compiled; NewMatcher performs the
// fail-fast compilation pass.
func LoadFile(path string, source model.RuleSource) ([]model.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}
	return parseRules(string(data), source)
}

func parseRules(content string, source model.RuleSource) ([]model.Rule, error) {
	// Filter comments and blank lines, remembering where each CSV record
	// starts in the original file for diagnostics. A quoted field may span
	// physical lines, so records are delimited by quote parity rather than
	// assumed to be one per line; inside a quoted field nothing is filtered.
	var filtered []string
	var recordLines []int
	inQuote := false
	for i, line := range strings.Split(content, "\n") {
		if !inQuote {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			recordLines = append(recordLines, i+1)
		}
		filtered = append(filtered, line)
		if strings.Count(line, `"`)%2 == 1 {
			inQuote = !inQuote
		}
	}

	if len(filtered) == 0 {
		return nil, nil
	}

	var rows []*ruleRow
	if err := gocsv.UnmarshalString(strings.Join(filtered, "\n"), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse rule file: %w", err)
	}

	rules := make([]model.Rule, 0, len(rows))
	for i, row := range rows {
		pattern := strings.TrimSpace(row.Pattern)
		if pattern == "" {
			continue
		}

		// Row i is record i+1 (record 0 is the header).
		line := 0
		if i+1 < len(recordLines) {
			line = recordLines[i+1]
		}

		rules = append(rules, model.Rule{
			Pattern:     pattern,
			Merchant:    strings.TrimSpace(row.Merchant),
			Category:    strings.TrimSpace(row.Category),
			Subcategory: strings.TrimSpace(row.Subcategory),
			Tags:        splitTags(row.Tags),
			Source:      source,
			Line:        line,
		})
	}

	return rules, nil
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Diagnostic summarizes a rule file for the rules check command.
type Diagnostic struct {
	Path      string
	Exists    bool
	RuleCount int
	Errors    []string
}

// Diagnose loads and compiles a rule file, collecting every problem instead
// of stopping at the first. Unlike the fail-fast analyze path, this reports
// all broken rules at once.
func Diagnose(path string) Diagnostic {
	diag := Diagnostic{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return diag
		}
		diag.Errors = append(diag.Errors, fmt.Sprintf("failed to read file: %v", err))
		return diag
	}
	diag.Exists = true

	rules, err := parseRules(string(data), model.RuleSourceUser)
	if err != nil {
		diag.Errors = append(diag.Errors, err.Error())
		return diag
	}

	for _, r := range rules {
		if _, err := Compile(r); err != nil {
			diag.Errors = append(diag.Errors, err.Error())
			continue
		}
		if r.Merchant == "" {
			diag.Errors = append(diag.Errors, fmt.Sprintf("line %d: missing merchant name for pattern %q", r.Line, r.Pattern))
		}
		if r.Category == "" {
			diag.Errors = append(diag.Errors, fmt.Sprintf("line %d: missing category for pattern %q", r.Line, r.Pattern))
		}
		diag.RuleCount++
	}

	return diag
}
