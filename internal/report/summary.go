package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/discover"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/model"
)

// Options controls summary rendering.
type Options struct {
	ShowTraces   bool              // Include the per-merchant decision trace
	TravelLabels map[string]string // Location code -> display name
}

var sectionTitles = map[model.Kind]string{
	model.KindMonthly:  "MONTHLY RECURRING",
	model.KindAnnual:   "ANNUAL BILLS (Once a Year)",
	model.KindTravel:   "TRAVEL/TRIPS",
	model.KindVariable: "VARIABLE SPENDING",
	model.KindExcluded: "EXCLUDED (Income/Transfers/Investments)",
}

var sectionOrder = []model.Kind{
	model.KindMonthly,
	model.KindAnnual,
	model.KindTravel,
	model.KindVariable,
	model.KindExcluded,
}

// Summary renders the full classification report.
func Summary(analysis *engine.Analysis, opts Options) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SPENDING REPORT"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("%d transactions over %d months",
		len(analysis.Results), analysis.TotalMonths)))
	b.WriteString("\n")
	if analysis.HomeLocation != "" {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("home location auto-detected: %s", analysis.HomeLocation)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	byKind := make(map[model.Kind][]model.ClassificationResult)
	for _, r := range analysis.Classifications {
		byKind[r.Kind] = append(byKind[r.Kind], r)
	}

	for _, kind := range sectionOrder {
		results := byKind[kind]
		if len(results) == 0 {
			continue
		}

		b.WriteString(sectionStyle.Render(sectionTitles[kind]))
		b.WriteString("\n")

		total := decimal.Zero
		for _, r := range results {
			b.WriteString(renderMerchant(r, opts))
			total = total.Add(r.Merchant.Total)
		}

		b.WriteString(boldStyle.Render(fmt.Sprintf("%-40s $%12s", "TOTAL", total.StringFixed(2))))
		b.WriteString("\n\n")
	}

	b.WriteString(boldStyle.Render(fmt.Sprintf("ESTIMATED MONTHLY RUN-RATE: $%s",
		runRate(analysis).StringFixed(2))))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("(monthly typical + annual/12 + variable averaged over the dataset)"))
	b.WriteString("\n\n")

	if len(analysis.Unmatched) > 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf(
			"%d transactions had no matching rule. Run 'tally discover' for suggested rules.",
			len(analysis.Unmatched))))
		b.WriteString("\n")
	}

	return b.String()
}

// runRate estimates the ongoing monthly spend: each monthly merchant's
// typical charge, annual bills spread over twelve months, and variable
// spending averaged over the dataset span. Travel and excluded merchants are
// left out.
func runRate(analysis *engine.Analysis) decimal.Decimal {
	total := decimal.Zero
	months := decimal.NewFromInt(int64(analysis.TotalMonths))

	for _, r := range analysis.Classifications {
		switch r.Kind {
		case model.KindMonthly:
			total = total.Add(r.TypicalMonthly)
		case model.KindAnnual:
			total = total.Add(r.Merchant.Total.Div(decimal.NewFromInt(12)))
		case model.KindVariable:
			if analysis.TotalMonths > 0 {
				total = total.Add(r.Merchant.Total.Div(months))
			}
		}
	}

	return total.Round(2)
}

func renderMerchant(r model.ClassificationResult, opts Options) string {
	m := r.Merchant

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-40s $%12s", truncate(m.Name, 40), m.Total.StringFixed(2)))

	switch r.Kind {
	case model.KindMonthly:
		label := "consistent"
		if !r.Consistent {
			label = "irregular"
		}
		b.WriteString(fmt.Sprintf("  ~$%s/mo (%s)", r.TypicalMonthly.StringFixed(2), label))
	case model.KindExcluded:
		b.WriteString(fmt.Sprintf("  (%s)", r.ExcludedReason))
	case model.KindTravel:
		if loc := travelLocation(m, opts.TravelLabels); loc != "" {
			b.WriteString(fmt.Sprintf("  (%s)", loc))
		}
	}
	b.WriteString("\n")

	if opts.ShowTraces {
		for _, line := range r.TraceLines() {
			b.WriteString(subtleStyle.Render("    " + line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// travelLocation maps the merchant's most common location through the
// configured travel labels.
func travelLocation(m *model.Merchant, labels map[string]string) string {
	counts := make(map[string]int)
	for _, t := range m.Transactions {
		if t.Location != "" {
			counts[strings.ToUpper(t.Location)]++
		}
	}

	var best string
	var bestCount int
	for loc, n := range counts {
		if n > bestCount || (n == bestCount && loc < best) {
			best, bestCount = loc, n
		}
	}
	if best == "" {
		return ""
	}
	if label, ok := labels[best]; ok {
		return label
	}
	return best
}

// Suggestions renders discovery output: proposed rules for unknown merchants,
// ordered by total spend.
func Suggestions(suggestions []discover.Suggestion) string {
	if len(suggestions) == 0 {
		return "No unknown transactions found! All merchants are categorized.\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("UNKNOWN MERCHANTS - Top %d by spend", len(suggestions))))
	b.WriteString("\n\n")

	for i, s := range suggestions {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, boldStyle.Render(s.Merchant)))
		b.WriteString(fmt.Sprintf("   Count: %d | Total: $%s\n", s.Count, s.TotalSpend.StringFixed(2)))
		b.WriteString(subtleStyle.Render(fmt.Sprintf("   %s,%s,CATEGORY,SUBCATEGORY", s.Pattern, s.Merchant)))
		b.WriteString("\n")
		for _, e := range s.Examples {
			b.WriteString(subtleStyle.Render(fmt.Sprintf("     %s  %-40s $%s",
				e.Date.Format("01/02"), truncate(e.RawDescription, 40), e.Amount.StringFixed(2))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// truncate shortens s to at most n runes, never splitting a multi-byte
// character from a merchant name.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
