// Package ingest converts source statement files (CSV exports, fixed-column
// bank statements, OFX/QFX downloads) into normalized transactions. Sign
// convention is fixed here: positive amounts are money out.
package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = strings.NewReplacer("$", "", "€", "", "£", "", "¥", "")

// ParseAmount parses a statement amount string, handling thousand separators,
// currency symbols and parenthesized negatives. decimalSeparator is "." for
// US-style amounts ("1,234.56") or "," for European ("1.234,56").
func ParseAmount(s, decimalSeparator string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.TrimSpace(currencySymbols.Replace(s))

	if decimalSeparator == "," {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	if negative {
		return d.Neg(), nil
	}
	return d, nil
}
