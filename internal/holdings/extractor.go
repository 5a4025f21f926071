// Package holdings recovers typed security rows from a top-holdings
// section. Extraction is best-effort: rows that cannot be assembled into a
// name plus trailing weight are discarded, never reported as errors.
package holdings

import (
	"strings"
	"unicode"

	"github.com/fundclean/fundclean/internal/model"
)

// Extractor assembles multi-line table rows from a top-holdings section and
// classifies each as equity or fixed income.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract walks the section's lines, buffering wrapped rows until a
// trailing weight completes them. A sub-table header switches the
// instrument type for subsequent rows; a stop keyword ends extraction for
// the whole section.
func (e *Extractor) Extract(section model.Section) []model.TopHoldingEntry {
	var entries []model.TopHoldingEntry
	var buffer []string
	currentType := typeFromTitle(section.Title)

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		candidate := strings.Join(buffer, " ")
		buffer = nil
		if entry, ok := parseRow(candidate, currentType); ok {
			entries = append(entries, entry)
		}
	}

	for _, line := range section.Lines {
		lower := strings.ToLower(line)

		// Table headers and aggregate rows are never data.
		if strings.HasPrefix(lower, "sector ") {
			continue
		}
		if strings.HasPrefix(lower, "total") || strings.Contains(line, "合共") {
			continue
		}

		// A sub-table header flips the instrument type for rows below it.
		if containsAnyFold(line, holdingsHeaderCues) {
			if containsAnyFold(line, fixedIncomeCues) {
				flush()
				currentType = model.InstrumentFixedIncome
				continue
			}
			if containsAnyFold(line, equityCues) {
				flush()
				currentType = model.InstrumentEquity
				continue
			}
		}

		if containsAnyFold(line, seeMoreCues) {
			flush()
			continue
		}

		if containsAnyFold(line, stopKeywords) {
			flush()
			break
		}

		buffer = append(buffer, line)
		if numericTailRE.MatchString(strings.Join(buffer, " ")) {
			flush()
		}
	}

	flush()
	return entries
}

// parseRow turns an assembled candidate row into an entry. The candidate
// must end in a bare numeric weight; anything else is a malformed row.
func parseRow(candidate string, currentType model.InstrumentType) (model.TopHoldingEntry, bool) {
	candidate = strings.TrimSpace(candidate)
	loc := numericTailRE.FindStringIndex(candidate)
	if loc == nil {
		return model.TopHoldingEntry{}, false
	}

	rest := strings.TrimSpace(candidate[:loc[0]])
	if rest == "" || strings.Contains(rest, "%") {
		return model.TopHoldingEntry{}, false
	}

	name := rest
	if m := sectorSuffixRE.FindStringSubmatch(rest); m != nil {
		name = strings.TrimSpace(m[1])
	} else {
		name = cleanName(rest)
	}
	if name == "" {
		return model.TopHoldingEntry{}, false
	}

	return model.TopHoldingEntry{
		Name:           name,
		InstrumentType: classify(name, currentType),
	}, true
}

// cleanName drops the trailing localized annotations that PDF extraction
// appends after a Latin name: keep leading tokens, stopping at the first
// CJK-bearing token once at least one token has been kept.
func cleanName(raw string) string {
	tokens := strings.Fields(raw)
	var kept []string
	for _, tok := range tokens {
		if len(kept) > 0 && containsCJK(tok) {
			break
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func classify(name string, currentType model.InstrumentType) model.InstrumentType {
	if currentType != "" {
		return currentType
	}
	if isBondName(name) {
		return model.InstrumentFixedIncome
	}
	return model.InstrumentEquity
}

func isBondName(name string) bool {
	lower := strings.ToLower(name)
	for _, tok := range bondTokens {
		if containsCJK(tok) {
			if strings.Contains(name, tok) {
				return true
			}
			continue
		}
		for _, word := range strings.Fields(lower) {
			if strings.Trim(word, ".,()") == tok {
				return true
			}
		}
	}
	return false
}

// typeFromTitle seeds the instrument type from the section heading, when
// the heading carries a cue at all.
func typeFromTitle(title string) model.InstrumentType {
	if containsAnyFold(title, fixedIncomeCues) {
		return model.InstrumentFixedIncome
	}
	if containsAnyFold(title, equityCues) {
		return model.InstrumentEquity
	}
	return ""
}

func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) || (r >= 0x4e00 && r <= 0x9fff) {
			return true
		}
	}
	return false
}
