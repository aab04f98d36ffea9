// Package extract implements the field-extraction heuristics that turn the
// raw text of a bill into a structured record. Every field is resolved by an
// ordered list of independent matcher strategies; the first success wins and
// a miss degrades to the field's documented default, so extraction itself
// never fails.
package extract

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billscan/billscan/internal/bill"
)

// issuer fallback lines are clipped to this many characters
const maxIssuerLen = 50

// Extractor produces bill records from raw text.
type Extractor struct {
	registry *IssuerRegistry
	logger   *slog.Logger
}

// New creates an extractor backed by the given issuer registry.
func New(registry *IssuerRegistry, logger *slog.Logger) *Extractor {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Extractor{registry: registry, logger: logger}
}

// Extract builds a record from the text of one bill. It always returns a
// record; fields that cannot be extracted carry their default and are
// flagged for manual review.
func (e *Extractor) Extract(text string) bill.Record {
	var rec bill.Record

	rec.Issuer = e.detectIssuer(text)

	if my, ok := detectMonthYear(text); ok {
		rec.Month = bill.Found(my.Month)
		rec.Year = bill.Found(my.Year)
	} else {
		rec.Month = bill.Fallback(bill.DefaultMonth)
		rec.Year = bill.Fallback(bill.DefaultYear)
	}

	if amt, ok := detectAmount(text); ok {
		rec.Amount = bill.Found(amt)
	} else {
		rec.Amount = bill.Fallback(decimal.Zero)
	}

	e.logger.Debug("fields extracted",
		"issuer", rec.Issuer.Value,
		"month", rec.Month.Value,
		"year", rec.Year.Value,
		"amount", rec.Amount.Value,
		"defaulted", rec.DefaultedFields(),
	)
	return rec
}

// detectIssuer tries the registry (regex, alias scan, fuzzy header match)
// and falls back to the first non-empty line. The fallback is flagged as
// defaulted so the summary can surface it for review.
func (e *Extractor) detectIssuer(text string) bill.Field[string] {
	if name, ok := e.registry.Match(text); ok {
		return bill.Found(name)
	}

	lines := nonEmptyLines(text)
	if name, ok := e.registry.FuzzyMatch(lines); ok {
		return bill.Found(name)
	}

	if len(lines) > 0 {
		first := collapseWhitespace(lines[0])
		if r := []rune(first); len(r) > maxIssuerLen {
			first = string(r[:maxIssuerLen])
		}
		return bill.Fallback(first)
	}
	return bill.Fallback(bill.DefaultIssuer)
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
