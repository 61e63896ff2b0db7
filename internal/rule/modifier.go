// Package rule implements the categorization rule engine: pattern
// compilation with inline amount/date modifiers, and deterministic
// first-match resolution over an ordered rule list.
package rule

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// AmountOp identifies an amount comparison operator.
type AmountOp string

// Amount operators.
const (
	AmountGT    AmountOp = ">"
	AmountGTE   AmountOp = ">="
	AmountLT    AmountOp = "<"
	AmountLTE   AmountOp = "<="
	AmountEQ    AmountOp = "="
	AmountRange AmountOp = ":"
)

// AmountCondition is a predicate over a transaction amount.
type AmountCondition struct {
	Op    AmountOp
	Value decimal.Decimal // For comparison operators
	Min   decimal.Decimal // For range
	Max   decimal.Decimal
}

// Matches evaluates the condition. Sign is preserved so rules can target
// credits and refunds with negative bounds. Equality compares to the cent
// using decimal arithmetic.
func (c AmountCondition) Matches(amount decimal.Decimal) bool {
	switch c.Op {
	case AmountGT:
		return amount.GreaterThan(c.Value)
	case AmountGTE:
		return amount.GreaterThanOrEqual(c.Value)
	case AmountLT:
		return amount.LessThan(c.Value)
	case AmountLTE:
		return amount.LessThanOrEqual(c.Value)
	case AmountEQ:
		return amount.Round(2).Equal(c.Value.Round(2))
	case AmountRange:
		return amount.GreaterThanOrEqual(c.Min) && amount.LessThanOrEqual(c.Max)
	}
	return false
}

func (c AmountCondition) String() string {
	if c.Op == AmountRange {
		return fmt.Sprintf("[amount:%s-%s]", c.Min, c.Max)
	}
	return fmt.Sprintf("[amount%s%s]", c.Op, c.Value)
}

// DateOp identifies a date predicate form.
type DateOp string

// Date operators.
const (
	DateExact    DateOp = "exact"
	DateRange    DateOp = "range"
	DateRelative DateOp = "relative"
	DateMonth    DateOp = "month"
)

// DateCondition is a predicate over a transaction date. Relative windows are
// evaluated against an explicit "now" threaded in by the matcher so results
// are deterministic under test.
type DateCondition struct {
	Op           DateOp
	Value        time.Time // For exact match
	Start        time.Time // For range
	End          time.Time
	Month        int // 1..12, matches any year
	RelativeDays int
}

// Matches evaluates the condition at calendar-day granularity.
func (c DateCondition) Matches(date, now time.Time) bool {
	day := truncateDay(date)
	switch c.Op {
	case DateExact:
		return day.Equal(truncateDay(c.Value))
	case DateRange:
		return !day.Before(truncateDay(c.Start)) && !day.After(truncateDay(c.End))
	case DateRelative:
		// Inclusive window of N days ending today.
		today := truncateDay(now)
		cutoff := today.AddDate(0, 0, -c.RelativeDays)
		return !day.Before(cutoff) && !day.After(today)
	case DateMonth:
		return int(date.Month()) == c.Month
	}
	return false
}

func (c DateCondition) String() string {
	switch c.Op {
	case DateExact:
		return fmt.Sprintf("[date=%s]", c.Value.Format("2006-01-02"))
	case DateRange:
		return fmt.Sprintf("[date:%s..%s]", c.Start.Format("2006-01-02"), c.End.Format("2006-01-02"))
	case DateRelative:
		return fmt.Sprintf("[date:last%ddays]", c.RelativeDays)
	case DateMonth:
		return fmt.Sprintf("[month=%d]", c.Month)
	}
	return ""
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Modifier clause grammars. A trailing bracket clause that fits none of these
// is treated as part of the regex, not an error.
var (
	amountGTPattern    = regexp.MustCompile(`^\s*>\s*(-?[\d.]+)\s*$`)
	amountGTEPattern   = regexp.MustCompile(`^\s*>=\s*(-?[\d.]+)\s*$`)
	amountLTPattern    = regexp.MustCompile(`^\s*<\s*(-?[\d.]+)\s*$`)
	amountLTEPattern   = regexp.MustCompile(`^\s*<=\s*(-?[\d.]+)\s*$`)
	amountEQPattern    = regexp.MustCompile(`^\s*=\s*(-?[\d.]+)\s*$`)
	amountRangePattern = regexp.MustCompile(`^\s*:\s*(-?[\d.]+)\s*-\s*(-?[\d.]+)\s*$`)

	dateEQPattern       = regexp.MustCompile(`^\s*=\s*(\d{4}-\d{2}-\d{2})\s*$`)
	dateRangePattern    = regexp.MustCompile(`^\s*:\s*(\d{4}-\d{2}-\d{2})\s*\.\.\s*(\d{4}-\d{2}-\d{2})\s*$`)
	dateRelativePattern = regexp.MustCompile(`(?i)^\s*:\s*last(\d+)days\s*$`)

	monthEQPattern = regexp.MustCompile(`^\s*=\s*(\d{1,2})\s*$`)
)

func parseAmountModifier(value string) (AmountCondition, error) {
	// >= and <= must be tried before > and < so the longer operator wins.
	if m := amountGTEPattern.FindStringSubmatch(value); m != nil {
		return amountCond(AmountGTE, m[1])
	}
	if m := amountLTEPattern.FindStringSubmatch(value); m != nil {
		return amountCond(AmountLTE, m[1])
	}
	if m := amountGTPattern.FindStringSubmatch(value); m != nil {
		return amountCond(AmountGT, m[1])
	}
	if m := amountLTPattern.FindStringSubmatch(value); m != nil {
		return amountCond(AmountLT, m[1])
	}
	if m := amountEQPattern.FindStringSubmatch(value); m != nil {
		return amountCond(AmountEQ, m[1])
	}
	if m := amountRangePattern.FindStringSubmatch(value); m != nil {
		minVal, err := decimal.NewFromString(m[1])
		if err != nil {
			return AmountCondition{}, fmt.Errorf("invalid amount bound %q: %w", m[1], err)
		}
		maxVal, err := decimal.NewFromString(m[2])
		if err != nil {
			return AmountCondition{}, fmt.Errorf("invalid amount bound %q: %w", m[2], err)
		}
		return AmountCondition{Op: AmountRange, Min: minVal, Max: maxVal}, nil
	}

	return AmountCondition{}, fmt.Errorf(
		"invalid amount modifier [amount%s]: expected [amount>N], [amount<N], [amount=N], [amount>=N], [amount<=N] or [amount:MIN-MAX]",
		value)
}

func amountCond(op AmountOp, literal string) (AmountCondition, error) {
	v, err := decimal.NewFromString(literal)
	if err != nil {
		return AmountCondition{}, fmt.Errorf("invalid amount bound %q: %w", literal, err)
	}
	return AmountCondition{Op: op, Value: v}, nil
}

func parseDateModifier(value string) (DateCondition, error) {
	if m := dateEQPattern.FindStringSubmatch(value); m != nil {
		d, err := time.Parse("2006-01-02", m[1])
		if err != nil {
			return DateCondition{}, fmt.Errorf("invalid date %q: %w", m[1], err)
		}
		return DateCondition{Op: DateExact, Value: d}, nil
	}
	if m := dateRangePattern.FindStringSubmatch(value); m != nil {
		start, err := time.Parse("2006-01-02", m[1])
		if err != nil {
			return DateCondition{}, fmt.Errorf("invalid date %q: %w", m[1], err)
		}
		end, err := time.Parse("2006-01-02", m[2])
		if err != nil {
			return DateCondition{}, fmt.Errorf("invalid date %q: %w", m[2], err)
		}
		return DateCondition{Op: DateRange, Start: start, End: end}, nil
	}
	if m := dateRelativePattern.FindStringSubmatch(value); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil {
			return DateCondition{}, fmt.Errorf("invalid day count %q: %w", m[1], err)
		}
		return DateCondition{Op: DateRelative, RelativeDays: days}, nil
	}

	return DateCondition{}, fmt.Errorf(
		"invalid date modifier [date%s]: expected [date=YYYY-MM-DD], [date:YYYY-MM-DD..YYYY-MM-DD] or [date:lastNdays]",
		value)
}

func parseMonthModifier(value string) (DateCondition, error) {
	if m := monthEQPattern.FindStringSubmatch(value); m != nil {
		month, err := strconv.Atoi(m[1])
		if err != nil {
			return DateCondition{}, fmt.Errorf("invalid month %q: %w", m[1], err)
		}
		if month < 1 || month > 12 {
			return DateCondition{}, fmt.Errorf("invalid month %d: must be 1-12", month)
		}
		return DateCondition{Op: DateMonth, Month: month}, nil
	}

	return DateCondition{}, fmt.Errorf(
		"invalid month modifier [month%s]: expected [month=1] to [month=12]", value)
}
