package extractor

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/papertone/papertone/internal/display"
)

// TextExtractor produces the plain text of a PDF document.
type TextExtractor interface {
	// Extract returns the extractable text of the PDF at path, pages joined
	// by a newline in page order. A file that cannot be parsed at all yields
	// an empty string rather than an error; the caller decides what an empty
	// result means.
	Extract(path string) (string, error)
}

// PDF extracts text page by page with ledongthuc/pdf, falling back to
// pdfcpu content extraction for files the primary parser rejects.
type PDF struct{}

// NewPDF creates a PDF text extractor.
func NewPDF() PDF {
	return PDF{}
}

// Extract implements TextExtractor.
func (PDF) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		display.Warn(fmt.Sprintf("pdf open %q: %v; trying content fallback", path, err))
		return extractWithPdfcpu(path), nil
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not abort the extraction.
			display.Warn(fmt.Sprintf("pdf %q page %d: %v", path, i, err))
			continue
		}
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
