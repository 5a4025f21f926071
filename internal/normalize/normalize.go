// Package normalize canonicalizes raw lines extracted from fund PDFs.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// \s in Go regexp is ASCII-only; include Unicode space separators so
// ideographic spaces collapse too.
var whitespaceRE = regexp.MustCompile(`[\s\p{Zs}]+`)

// Width folding maps 、 and 。 to their halfwidth kana forms (､ ｡), not to
// ASCII, so ideographic punctuation is replaced before folding. The
// halfwidth forms are mapped too for text that already carries them.
var ideographicReplacer = strings.NewReplacer(
	"、", ",",
	"。", ".",
	"､", ",",
	"｡", ".",
)

// Line normalizes a single extracted line: trims it, folds full-width
// punctuation and letters to their ASCII forms, collapses whitespace runs,
// and ensures separators are followed by a space.
func Line(text string) string {
	if text == "" {
		return ""
	}
	s := strings.TrimSpace(text)
	s = ideographicReplacer.Replace(s)
	s = width.Narrow.String(s)
	s = whitespaceRE.ReplaceAllString(s, " ")
	s = spaceAfterSeparators(s)
	return s
}

// Lines normalizes each line and drops the ones that normalize to empty.
func Lines(lines []string) []string {
	var result []string
	for _, line := range lines {
		if n := Line(line); n != "" {
			result = append(result, n)
		}
	}
	return result
}

func spaceAfterSeparators(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		switch r {
		case ',', ';', ':':
			if i+1 < len(runes) && runes[i+1] != ' ' {
				b.WriteRune(' ')
			}
		}
	}
	return b.String()
}
