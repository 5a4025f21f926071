// Package sections segments filtered fund-disclosure pages into named
// sections using multilingual heading patterns.
package sections

import (
	"strings"

	"github.com/fundclean/fundclean/internal/model"
	"github.com/fundclean/fundclean/internal/normalize"
)

// Segmenter splits normalized page text into sections. The definitions
// slice is fixed at construction; first definition with a matching pattern
// wins.
type Segmenter struct {
	definitions []Definition
}

// NewSegmenter creates a Segmenter. A nil or empty definitions slice means
// the default taxonomy.
func NewSegmenter(definitions []Definition) *Segmenter {
	if len(definitions) == 0 {
		definitions = DefaultDefinitions()
	}
	return &Segmenter{definitions: definitions}
}

// Segment walks the pages in order and returns the accumulated sections.
// Content before the first heading lands in the document_intro section,
// which is emitted only if it has any lines. A matched heading line becomes
// the new section's title and contributes to no section body.
func (s *Segmenter) Segment(pages []model.Page) []model.Section {
	var out []model.Section
	current := model.Section{Name: IntroSectionName, Title: introSectionTitle}

	for _, page := range pages {
		lines := normalize.Lines(strings.Split(page.Text, "\n"))
		for _, line := range lines {
			def := s.match(line)
			if def != nil {
				if len(current.Lines) > 0 {
					out = append(out, current)
				}
				current = model.Section{
					Name:  def.Name,
					Title: line,
					Pages: []int{page.Number},
				}
				continue
			}

			current.Lines = append(current.Lines, line)
			if !containsPage(current.Pages, page.Number) {
				current.Pages = append(current.Pages, page.Number)
			}
		}
	}

	if len(current.Lines) > 0 || current.Name != IntroSectionName {
		out = append(out, current)
	}

	return out
}

func (s *Segmenter) match(line string) *Definition {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	for i := range s.definitions {
		for _, pattern := range s.definitions[i].Patterns {
			if pattern.MatchString(line) {
				return &s.definitions[i]
			}
		}
	}
	return nil
}

func containsPage(pages []int, n int) bool {
	for _, p := range pages {
		if p == n {
			return true
		}
	}
	return false
}
