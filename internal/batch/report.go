package batch

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Outcome records the result of processing one input file: either the
// extracted fields and target sheet, or a failure reason.
type Outcome struct {
	Path      string          `csv:"file"`
	Sheet     string          `csv:"sheet"`
	Issuer    string          `csv:"issuer"`
	Month     int             `csv:"month"`
	Year      int             `csv:"year"`
	Amount    decimal.Decimal `csv:"amount"`
	Defaulted string          `csv:"defaulted_fields"`
	Error     string          `csv:"error"`
}

// Failed reports whether the file was skipped outright.
func (o Outcome) Failed() bool { return o.Error != "" }

// NeedsReview reports whether any field fell back to its default.
func (o Outcome) NeedsReview() bool { return o.Defaulted != "" }

// Summary aggregates one batch run.
type Summary struct {
	RunID     uuid.UUID
	Outcomes  []Outcome
	Processed int
	Skipped   int
}

// Failed reports whether any file in the run failed outright.
func (s *Summary) Failed() bool {
	return s.Skipped > 0
}

// WriteReport renders the per-file outcomes as CSV for manual review.
func WriteReport(w io.Writer, outcomes []Outcome) error {
	return gocsv.Marshal(outcomes, w)
}
