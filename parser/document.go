package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedInput is returned for input files the loader cannot read.
var ErrUnsupportedInput = errors.New("parser: unsupported input format")

// ReadDocument loads a single policy document as raw text. Plain-text
// files are read as-is; PDFs are reduced to their extracted plain text.
func ReadDocument(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", ".md", ".text":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading document: %w", err)
		}
		return string(data), nil
	case ".pdf":
		return readPDF(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedInput, ext)
	}
}

// readPDF extracts plain text from every page. Pages that fail to
// extract are skipped; a PDF with no extractable text is an error.
func readPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no extractable text in PDF %s", filepath.Base(path))
	}
	return b.String(), nil
}
