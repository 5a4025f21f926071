package sections

import "regexp"

// Definition names a section and lists the heading patterns that open it.
// Patterns are tried in order and match anywhere in the heading line.
type Definition struct {
	Name     string
	Patterns []*regexp.Regexp
}

// IntroSectionName is the synthetic section that collects content seen
// before the first recognized heading.
const IntroSectionName = "document_intro"

const introSectionTitle = "Document Introduction"

// DefaultDefinitions returns the section taxonomy for quarterly fund
// disclosures, in match-priority order. Adding a locale means adding
// patterns here, not changing the segmenter.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Name: "important_information",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)important\s+information`),
				regexp.MustCompile(`重要事項`),
			},
		},
		{
			Name: "top_holdings",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)top\s+10\s+holdings`),
				regexp.MustCompile(`十大持股`),
				regexp.MustCompile(`十大投資項目`),
			},
		},
		{
			Name: "performance",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)calendar\s+year\s+returns`),
				regexp.MustCompile(`年度回報`),
				regexp.MustCompile(`累積回報`),
			},
		},
		{
			Name: "product_summary",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)product\s+key\s+facts`),
				regexp.MustCompile(`產品資料概要`),
			},
		},
		{
			Name: "objective_strategy",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)objectives?\s+and\s+investment\s+strategy`),
				regexp.MustCompile(`目標及投資策略`),
			},
		},
		{
			Name: "fees_charges",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)fees?\s+and\s+charges`),
				regexp.MustCompile(`費用及開支`),
				regexp.MustCompile(`費用`),
			},
		},
		{
			Name: "other_information",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)other\s+information`),
				regexp.MustCompile(`其他資料`),
			},
		},
	}
}
