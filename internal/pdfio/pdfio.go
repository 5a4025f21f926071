// Package pdfio reads per-page text out of PDF files and writes the
// plain-text documents produced by the page filter.
package pdfio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/fundclean/fundclean/internal/model"
)

// PageSeparator joins page texts in written documents. Form feed is the
// conventional page boundary for extracted PDF text.
const PageSeparator = "\f"

// ReadPages extracts the text of every page in the PDF at path. A page
// whose extraction fails yields an empty-text Page carrying the failure
// reason; only opening the document itself can fail.
func ReadPages(path string) ([]model.Page, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]model.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		p := model.Page{Number: i}
		page := reader.Page(i)
		if page.V.IsNull() {
			p.ExtractErr = "null page object"
			pages = append(pages, p)
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			p.ExtractErr = err.Error()
			pages = append(pages, p)
			continue
		}
		p.Text = text
		pages = append(pages, p)
	}
	return pages, nil
}

// WritePages writes the given pages as a UTF-8 text document, in order,
// separated by form feeds.
func WritePages(path string, pages []model.Page) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	if err := os.WriteFile(path, []byte(strings.Join(texts, PageSeparator)), 0644); err != nil {
		return fmt.Errorf("write filtered document: %w", err)
	}
	return nil
}
