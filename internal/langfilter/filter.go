// Package langfilter drops pages that are dominated by English text,
// keeping the Chinese half of bilingual fund disclosures.
package langfilter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fundclean/fundclean/internal/model"
	"github.com/fundclean/fundclean/internal/pdfio"
)

// Default classification thresholds.
const (
	DefaultChineseThreshold    = 10
	DefaultASCIIRatioThreshold = 0.8
)

// Filter classifies pages as Chinese-dominant (kept) or English-dominant
// (removed). Each page is judged independently.
type Filter struct {
	// ChineseThreshold is the absolute CJK character count at which a page
	// is kept regardless of its ASCII content.
	ChineseThreshold int
	// ASCIIRatioThreshold removes a page when ASCII letters make up at
	// least this share of its letters and the CJK count is below threshold.
	ASCIIRatioThreshold float64
}

// NewFilter returns a Filter with the default thresholds.
func NewFilter() *Filter {
	return &Filter{
		ChineseThreshold:    DefaultChineseThreshold,
		ASCIIRatioThreshold: DefaultASCIIRatioThreshold,
	}
}

// Result summarizes one filtering run. KeptPages and RemovedPages are
// 1-based, disjoint, and together cover every page of the input.
type Result struct {
	InputPath    string
	OutputPath   string // empty when nothing was written
	KeptPages    []int
	RemovedPages []int
	TotalPages   int
}

// KeptCount returns the number of pages that survived.
func (r Result) KeptCount() int { return len(r.KeptPages) }

// RemovedCount returns the number of pages that were dropped.
func (r Result) RemovedCount() int { return len(r.RemovedPages) }

// Keep reports whether a page with the given text is Chinese-dominant.
func (f *Filter) Keep(text string) bool {
	var chinese, asciiLetters int
	for _, r := range text {
		switch {
		case isCJK(r):
			chinese++
		case r < 128 && isASCIILetter(byte(r)):
			asciiLetters++
		}
	}

	if chinese >= f.ChineseThreshold {
		return true
	}

	totalLetters := chinese + asciiLetters
	if totalLetters == 0 {
		// Empty or symbols-only page; removable.
		return false
	}

	asciiRatio := float64(asciiLetters) / float64(totalLetters)
	return asciiRatio < f.ASCIIRatioThreshold
}

// Apply classifies every page and, when outputPath is non-empty and at
// least one page is kept, writes a document containing only the kept pages
// in their original order. Pages whose extraction failed count as empty.
func (f *Filter) Apply(inputPath string, pages []model.Page, outputPath string) (Result, error) {
	result := Result{
		InputPath:  inputPath,
		TotalPages: len(pages),
	}

	var kept []model.Page
	for _, page := range pages {
		if f.Keep(page.Text) {
			result.KeptPages = append(result.KeptPages, page.Number)
			kept = append(kept, page)
		} else {
			result.RemovedPages = append(result.RemovedPages, page.Number)
		}
	}

	if outputPath != "" && len(kept) > 0 {
		if err := pdfio.WritePages(outputPath, kept); err != nil {
			return result, fmt.Errorf("write kept pages: %w", err)
		}
		result.OutputPath = outputPath
	}

	return result, nil
}

// FilteredName maps a source PDF name to the name of its filtered text
// document.
func FilteredName(pdfName string) string {
	return strings.TrimSuffix(pdfName, filepath.Ext(pdfName)) + ".txt"
}

func isCJK(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
