package holdings

import (
	"regexp"
	"strings"
)

// Rule data for the extractor. Kept apart from the state machine so new
// locales and table layouts are data additions.

// sectorNames are the sector labels that can trail a security name in a
// holdings row.
var sectorNames = []string{
	"Information Technology",
	"Communication Services",
	"Consumer Discretionary",
	"Consumer Staples",
	"Health Care",
	"Financials",
	"Industrials",
	"Materials",
	"Utilities",
	"Real Estate",
	"Energy",
	"Other",
	"Cash & Derivatives",
	"Cash",
}

// sectorSuffixRE captures a Latin security name immediately followed by a
// known sector label.
var sectorSuffixRE = buildSectorPattern()

func buildSectorPattern() *regexp.Regexp {
	escaped := make([]string, len(sectorNames))
	for i, s := range sectorNames {
		escaped[i] = regexp.QuoteMeta(s)
	}
	return regexp.MustCompile(`(?i)^([A-Za-z0-9.,'&()/ -]+?)\s+(?:` + strings.Join(escaped, "|") + `)\b`)
}

// numericTailRE matches a trailing weight token, optionally a percentage.
var numericTailRE = regexp.MustCompile(`(\s|^)([0-9]+(?:\.[0-9]+)?%?)$`)

// fixedIncomeCues mark a title or sub-table header as fixed income.
var fixedIncomeCues = []string{
	"fixed income",
	"fixed-income",
	"bond",
	"debt",
	"債券",
	"固定收益",
}

// equityCues mark a title or sub-table header as equities.
var equityCues = []string{
	"equity",
	"equities",
	"stock",
	"share",
	"股票",
	"持股",
}

// holdingsHeaderCues identify a sub-table header line that can switch the
// current instrument type mid-section.
var holdingsHeaderCues = []string{
	"top 10",
	"top ten",
	"holdings",
	"十大",
}

// seeMoreCues are footnote / call-to-action lines embedded in the table.
var seeMoreCues = []string{
	"see more",
	"scan the",
	"scan code",
	"qr code",
	"掃描",
	"二維碼",
	"瀏覽更多",
	"查看更多",
}

// stopKeywords terminate extraction for the section: everything below is
// portfolio-breakdown, allocation, or footer content.
var stopKeywords = []string{
	"portfolio breakdown",
	"asset allocation",
	"sector allocation",
	"geographical allocation",
	"credit rating",
	"source:",
	"投資組合",
	"資產分配",
	"資產配置",
	"行業分布",
	"行業分佈",
	"地區分布",
	"地區分佈",
	"資料來源",
}

// bondTokens are lexical cues that a security name is a debt instrument.
var bondTokens = []string{
	"bond",
	"bonds",
	"note",
	"notes",
	"treasury",
	"debenture",
	"bill",
	"bills",
	"gilt",
	"債",
}

func containsAnyFold(s string, cues []string) bool {
	lower := strings.ToLower(s)
	for _, cue := range cues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
