// Package bill defines the structured extraction result for one bill
// document and the documented fallback defaults for each field.
package bill

import "github.com/shopspring/decimal"

// Fallback defaults applied when a field cannot be extracted.
const (
	DefaultIssuer = "Unknown"
	DefaultMonth  = 1
	DefaultYear   = 1970
)

// Field holds an extracted value together with a flag telling whether the
// extraction fell back to the field's default. The flag is what lets the
// batch summary point operators at records that need manual review.
type Field[T any] struct {
	Value     T
	Defaulted bool
}

// Found wraps a successfully extracted value.
func Found[T any](v T) Field[T] {
	return Field[T]{Value: v}
}

// Fallback wraps a default value and marks the field as defaulted.
func Fallback[T any](v T) Field[T] {
	return Field[T]{Value: v, Defaulted: true}
}

// Record is the structured extraction result for one bill document.
type Record struct {
	Issuer Field[string]
	Month  Field[int]
	Year   Field[int]
	Amount Field[decimal.Decimal]
}

// DefaultedFields returns the names of the fields that used fallback
// defaults, in a fixed order.
func (r Record) DefaultedFields() []string {
	var fields []string
	if r.Issuer.Defaulted {
		fields = append(fields, "issuer")
	}
	if r.Month.Defaulted {
		fields = append(fields, "month")
	}
	if r.Year.Defaulted {
		fields = append(fields, "year")
	}
	if r.Amount.Defaulted {
		fields = append(fields, "amount")
	}
	return fields
}

// Complete reports whether every field was extracted without a fallback.
func (r Record) Complete() bool {
	return !r.Issuer.Defaulted && !r.Month.Defaulted && !r.Year.Defaulted && !r.Amount.Defaulted
}

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName converts a month number (1-12) to its full English name.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return "Unknown"
	}
	return monthNames[m-1]
}
