// Package workbook persists bill records into a single xlsx file holding
// one append-only sheet per issuer.
package workbook

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/billscan/billscan/internal/bill"
)

const (
	sheetSuffix  = "_bill"
	maxSheetName = 31 // Excel limit
)

// Excel forbids these characters in sheet names.
var sheetNameSanitizer = strings.NewReplacer(
	":", "_",
	"\\", "_",
	"/", "_",
	"?", "_",
	"*", "_",
	"[", "_",
	"]", "_",
)

var headerRow = []interface{}{"month", "year", "amount"}

// SheetName derives the deterministic sheet name for an issuer: sanitized
// issuer plus "_bill", clipped to Excel's 31-character limit.
func SheetName(issuer string) string {
	safe := strings.TrimSpace(sheetNameSanitizer.Replace(issuer))
	if safe == "" {
		safe = "Unknown"
	}
	name := []rune(safe + sheetSuffix)
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return string(name)
}

// Workbook wraps one xlsx file. A single invocation is assumed to own the
// file exclusively; there is no concurrent-access guard.
type Workbook struct {
	path  string
	f     *excelize.File
	fresh bool
}

// Open loads the workbook at path, creating a new in-memory one when the
// file does not exist yet. Nothing touches disk until Save.
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", path, err)
		}
		return &Workbook{path: path, f: f}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat workbook %s: %w", path, err)
	}
	return &Workbook{path: path, f: excelize.NewFile(), fresh: true}, nil
}

// Path returns the on-disk location of the workbook.
func (w *Workbook) Path() string { return w.path }

// Append writes the record as a new data row on the issuer's sheet, creating
// the sheet with its header row first when needed. Header creation is
// idempotent; duplicate bills append duplicate rows. Returns the sheet name.
func (w *Workbook) Append(rec bill.Record) (string, error) {
	name := SheetName(rec.Issuer.Value)

	idx, err := w.f.GetSheetIndex(name)
	if err != nil {
		return "", fmt.Errorf("resolve sheet %q: %w", name, err)
	}
	if idx < 0 {
		if err := w.createSheet(name); err != nil {
			return "", err
		}
	}

	rows, err := w.f.GetRows(name)
	if err != nil {
		return "", fmt.Errorf("read sheet %q: %w", name, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return "", err
	}

	amount, _ := rec.Amount.Value.Float64()
	row := []interface{}{rec.Month.Value, rec.Year.Value, amount}
	if err := w.f.SetSheetRow(name, cell, &row); err != nil {
		return "", fmt.Errorf("append to sheet %q: %w", name, err)
	}
	return name, nil
}

// createSheet adds the issuer sheet and its header row. The empty default
// sheet of a brand-new workbook is renamed instead of left behind.
func (w *Workbook) createSheet(name string) error {
	if w.fresh {
		if err := w.f.SetSheetName(w.f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
		w.fresh = false
	} else {
		if _, err := w.f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}
	if err := w.f.SetSheetRow(name, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header of sheet %q: %w", name, err)
	}
	return nil
}

// Sheets lists the sheet names in workbook order.
func (w *Workbook) Sheets() []string { return w.f.GetSheetList() }

// Rows returns the raw rows of one sheet, header included.
func (w *Workbook) Rows(sheet string) ([][]string, error) { return w.f.GetRows(sheet) }

// Save writes the workbook to disk.
func (w *Workbook) Save() error {
	if err := w.f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error { return w.f.Close() }
