package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billscan/billscan/pkg/money"
)

var (
	amountKeywordRe = regexp.MustCompile(`(?i)total\s+amount\s+due|amount\s+due\s+now|amount\s+due|total\s+due|current\s+charges`)

	// "$1,234.56" is the most reliable shape
	currencyAmountRe = regexp.MustCompile(`\$\s*(\d[\d,]*\.\d{2})`)
	// bare "1,234.56" is accepted unless it sits in a phone-number context
	decimalAmountRe = regexp.MustCompile(`(\d[\d,]*\.\d{2})`)
	phoneContextRe  = regexp.MustCompile(`\d-\d`)
)

// amounts at or above this are assumed to be account numbers, not bills
var maxReasonableAmount = decimal.NewFromInt(100000)

var minReasonableAmount = decimal.RequireFromString("0.01")

// detectAmount scans for the bill total. Lines within one line of an
// amount keyword ("total amount due", ...) are searched first and the
// largest candidate in that window wins; without a keyword hit, the largest
// currency-like number anywhere in the text wins.
func detectAmount(text string) (decimal.Decimal, bool) {
	lines := strings.Split(text, "\n")

	for idx, line := range lines {
		if !amountKeywordRe.MatchString(line) {
			continue
		}
		var candidates []decimal.Decimal
		lo := max(0, idx-1)
		hi := min(len(lines), idx+2)
		for _, l := range lines[lo:hi] {
			candidates = append(candidates, amountCandidates(l)...)
		}
		if len(candidates) > 0 {
			return maxDecimal(candidates), true
		}
	}

	var all []decimal.Decimal
	for _, line := range lines {
		all = append(all, amountCandidates(line)...)
	}
	if len(all) > 0 {
		return maxDecimal(all), true
	}
	return decimal.Zero, false
}

// amountCandidates extracts plausible bill amounts from one line.
func amountCandidates(line string) []decimal.Decimal {
	var out []decimal.Decimal

	for _, m := range currencyAmountRe.FindAllStringSubmatch(line, -1) {
		d, err := money.Parse(m[1])
		if err == nil && d.LessThan(maxReasonableAmount) {
			out = append(out, d)
		}
	}

	for _, loc := range decimalAmountRe.FindAllStringSubmatchIndex(line, -1) {
		start, end := loc[0], loc[1]
		context := line[max(0, start-5):min(len(line), end+5)]
		if phoneContextRe.MatchString(context) {
			continue
		}
		d, err := money.Parse(line[loc[2]:loc[3]])
		if err == nil && d.GreaterThanOrEqual(minReasonableAmount) && d.LessThan(maxReasonableAmount) {
			out = append(out, d)
		}
	}

	return out
}

func maxDecimal(ds []decimal.Decimal) decimal.Decimal {
	best := ds[0]
	for _, d := range ds[1:] {
		if d.GreaterThan(best) {
			best = d
		}
	}
	return best
}
