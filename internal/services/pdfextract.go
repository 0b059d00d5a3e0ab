package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFExtractService struct{}

func NewPDFExtractService() *PDFExtractService {
	return &PDFExtractService{}
}

// ExtractText converts a raw PDF byte buffer into a single text blob, page by
// page, each page prefixed with a "--- Page N ---" marker. The filename is
// used only in error messages. There is no partial-success mode: a page that
// fails to yield text fails the whole document.
func (s *PDFExtractService) ExtractText(data []byte, filename string) (text string, err error) {
	// The pdf library panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Filename: filename, Err: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Filename: filename, Err: err}
	}

	pageTexts := make([]string, 0, reader.NumPage())
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			pageTexts = append(pageTexts, "")
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Filename: filename, Err: err}
		}
		pageTexts = append(pageTexts, content)
	}

	return assemblePages(pageTexts, filename)
}

// assemblePages joins per-page text with 1-based page markers. A document
// whose pages hold only whitespace is an empty document, not an extraction
// failure.
func assemblePages(pageTexts []string, filename string) (string, error) {
	empty := true
	for _, content := range pageTexts {
		if strings.TrimSpace(content) != "" {
			empty = false
			break
		}
	}
	if empty {
		return "", &EmptyDocumentError{Filename: filename}
	}

	var b strings.Builder
	for i, content := range pageTexts {
		fmt.Fprintf(&b, "--- Page %d ---\n", i+1)
		b.WriteString(content)
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String()), nil
}
