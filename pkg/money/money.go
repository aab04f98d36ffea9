// Package money provides precise parsing and display formatting for bill
// amounts. Parsing goes through shopspring/decimal so values survive exactly
// as printed on the bill; display formatting uses go-money so status lines
// show proper currency output.
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// currency symbols stripped before numeric parsing
var symbols = []string{"$", "€", "£", "R$", "¥", "₹"}

// Parse converts a currency-like string ("$1,234.56", "120.45") into a
// decimal amount. Thousands separators and currency symbols are removed.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	for _, sym := range symbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// FormatUSD renders a decimal amount as a US dollar string ("$120.45")
// for per-file status output.
func FormatUSD(d decimal.Decimal) string {
	cents := d.Mul(decimal.New(1, 2)).Round(0).IntPart()
	return gomoney.New(cents, gomoney.USD).Display()
}
