package model

import (
	"strconv"
	"strings"
)

// Page is one page of a source document as extracted, 1-based.
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	// ExtractErr records why extraction produced no text. Extraction is
	// best-effort: a failed page is an empty page, never a failed document.
	ExtractErr string `json:"extract_err,omitempty"`
}

// Section is a named span of normalized lines between two recognized
// headings. The same heading can recur in one document; occurrences are
// kept as separate sections and never merged.
type Section struct {
	Name  string   `json:"name"`  // taxonomy tag, e.g. "top_holdings"
	Title string   `json:"title"` // the heading line as matched, verbatim
	Pages []int    `json:"pages"` // pages the body touches, first-seen order
	Lines []string `json:"-"`
}

// Text joins the accumulated lines and trims surrounding whitespace.
func (s Section) Text() string {
	return strings.TrimSpace(strings.Join(s.Lines, "\n"))
}

// Key identifies a section occurrence within one document by its ordinal
// position among all sections of that document.
func (s Section) Key(index int) string {
	return s.Name + ":" + strconv.Itoa(index)
}
