// Package batch drives the per-file pipeline: enumerate the input files,
// extract fields from each bill, append to the workbook, and account for
// every outcome in a run summary.
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/billscan/billscan/internal/bill"
	"github.com/billscan/billscan/internal/extract"
	"github.com/billscan/billscan/internal/pdftext"
	"github.com/billscan/billscan/internal/workbook"
	"github.com/billscan/billscan/pkg/money"
)

// BadInput is an input path that could not be resolved to bill files.
type BadInput struct {
	Path string
	Err  error
}

// Runner processes batches of bill files.
type Runner struct {
	extractor *extract.Extractor
	texts     pdftext.Extractor
	logger    *slog.Logger
}

// NewRunner wires a runner from its collaborators.
func NewRunner(extractor *extract.Extractor, texts pdftext.Extractor, logger *slog.Logger) *Runner {
	return &Runner{extractor: extractor, texts: texts, logger: logger}
}

// Run processes every resolved input file against the workbook. The workbook
// is saved after each appended bill, so an aborted run keeps everything
// processed before the failure. Per-file extraction errors are recorded and
// skipped; only workbook write/save failures abort the run, returned as the
// error alongside the partial summary.
func (r *Runner) Run(wb *workbook.Workbook, paths []string) (*Summary, error) {
	summary := &Summary{RunID: uuid.New()}

	files, bad := ResolveFiles(paths)
	for _, b := range bad {
		summary.Outcomes = append(summary.Outcomes, Outcome{Path: b.Path, Error: b.Err.Error()})
		summary.Skipped++
		r.logger.Warn("skipping input", "run_id", summary.RunID, "path", b.Path, "error", b.Err)
	}

	for _, file := range files {
		text, err := r.texts.Extract(file)
		if err != nil {
			summary.Outcomes = append(summary.Outcomes, Outcome{Path: file, Error: err.Error()})
			summary.Skipped++
			r.logger.Warn("unreadable bill, skipping", "run_id", summary.RunID, "path", file, "error", err)
			continue
		}

		rec := r.extractor.Extract(text)

		sheet, err := wb.Append(rec)
		if err != nil {
			return summary, fmt.Errorf("record %s: %w", file, err)
		}
		if err := wb.Save(); err != nil {
			return summary, err
		}

		summary.Outcomes = append(summary.Outcomes, Outcome{
			Path:      file,
			Sheet:     sheet,
			Issuer:    rec.Issuer.Value,
			Month:     rec.Month.Value,
			Year:      rec.Year.Value,
			Amount:    rec.Amount.Value,
			Defaulted: strings.Join(rec.DefaultedFields(), ","),
		})
		summary.Processed++

		r.logger.Info("bill recorded",
			"run_id", summary.RunID,
			"path", file,
			"sheet", sheet,
			"issuer", rec.Issuer.Value,
			"period", fmt.Sprintf("%s %d", bill.MonthName(rec.Month.Value), rec.Year.Value),
			"amount", money.FormatUSD(rec.Amount.Value),
			"defaulted", rec.DefaultedFields(),
		)
	}

	return summary, nil
}

// ResolveFiles expands the input paths into an ordered list of candidate
// bill files. Directories contribute their *.pdf files recursively, sorted;
// explicit files must carry the .pdf extension. Unusable paths are returned
// separately so the caller can record them without aborting.
func ResolveFiles(paths []string) ([]string, []BadInput) {
	var files []string
	var bad []BadInput

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			bad = append(bad, BadInput{Path: p, Err: err})
			continue
		}

		if info.IsDir() {
			var found []string
			err := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isPDF(path) {
					found = append(found, path)
				}
				return nil
			})
			if err != nil {
				bad = append(bad, BadInput{Path: p, Err: err})
				continue
			}
			sort.Strings(found)
			files = append(files, found...)
			continue
		}

		if !isPDF(p) {
			bad = append(bad, BadInput{Path: p, Err: errors.New("not a PDF file")})
			continue
		}
		files = append(files, p)
	}

	return files, bad
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
