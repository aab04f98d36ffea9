// Package pdftext extracts the plain-text layer of PDF bill documents.
// Scanned/image-only PDFs yield empty text; OCR is out of scope.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor turns a bill document on disk into plain text. The batch driver
// depends on this interface so tests can substitute plain-text fixtures.
type Extractor interface {
	Extract(path string) (string, error)
}

// Reader extracts text with the ledongthuc/pdf text-layer decoder.
type Reader struct{}

// Extract concatenates the row-ordered text of every page, one line per
// text row, pages separated by newlines.
func (Reader) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// a page with a broken text stream should not sink the bill
			continue
		}
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(word.S)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}
