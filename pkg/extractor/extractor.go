// Package extractor pulls plain text out of résumé PDFs.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNotPDF is returned when the bytes cannot be opened as a PDF document.
	ErrNotPDF = errors.New("extractor: not a readable pdf")
	// ErrEmptyText is returned when the document has no text layer (e.g. a scan).
	ErrEmptyText = errors.New("extractor: pdf contains no extractable text")
)

// Document is the text of a PDF with a few counters.
type Document struct {
	Text      string
	PageCount int
	WordCount int
}

// Extract opens PDF bytes in memory and concatenates the text of every page,
// separated by a single space. Pages without a text layer contribute nothing.
func Extract(data []byte) (doc Document, err error) {
	// ledongthuc/pdf panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			doc, err = Document{}, fmt.Errorf("%w: %v", ErrNotPDF, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return Document{}, fmt.Errorf("read pdf page %d: %w", i, err)
		}
		pages = append(pages, text)
	}

	text := strings.Join(pages, " ")
	if strings.TrimSpace(text) == "" {
		return Document{PageCount: numPages}, ErrEmptyText
	}
	return Document{
		Text:      text,
		PageCount: numPages,
		WordCount: len(strings.Fields(text)),
	}, nil
}

// PDFExtractor exposes Extract behind a value so services can take it as a dependency.
type PDFExtractor struct{}

func NewPDFExtractor() PDFExtractor { return PDFExtractor{} }

func (PDFExtractor) Extract(data []byte) (Document, error) { return Extract(data) }
