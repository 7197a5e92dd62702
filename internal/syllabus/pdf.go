package syllabus

import (
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFFormat implements Format for PDF files.
type PDFFormat struct{}

func init() {
	Register(&PDFFormat{})
}

func (f *PDFFormat) Name() string         { return "PDF" }
func (f *PDFFormat) Extensions() []string { return []string{".pdf"} }

func (f *PDFFormat) Extract(filename string) (string, error) {
	return ExtractTextFromPDF(filename)
}

// ExtractTextFromPDF extracts text page by page in reading order.
// Rows are emitted as separate lines because topic extraction is
// line-oriented; pages are separated by form feeds. Encrypted or
// malformed files fail with ErrUnreadable.
func ExtractTextFromPDF(filename string) (string, error) {
	f, reader, err := pdflib.Open(filename)
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", ErrUnreadable, err)
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f")
		}
		for _, row := range rows {
			for _, text := range row.Content {
				buf.WriteString(text.S)
			}
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}
