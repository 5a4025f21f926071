package pipeline

import (
	"strings"
	"testing"

	"github.com/fundclean/fundclean/internal/model"
)

func TestDeriveFundMetadata_NameAndCode(t *testing.T) {
	tests := []struct {
		path     string
		override string
		wantName string
		wantCode string
	}{
		{"/raw/Asia Growth Fund_AGF01.pdf", "", "Asia Growth Fund", "AGF01"},
		{"/raw/Asia Growth Fund_AGF01.pdf", "OVR-9", "Asia Growth Fund", "OVR-9"},
		{"/raw/PlainFund.pdf", "", "PlainFund", "PlainFund"},
		{"/raw/Name_with spaces.pdf", "", "Name_with spaces", "Name_with spaces"},
		{"/raw/Trailing_.pdf", "", "Trailing_", "Trailing_"},
	}
	for _, tt := range tests {
		got := deriveFundMetadata(tt.path, tt.override)
		if got.Name != tt.wantName || got.Code != tt.wantCode {
			t.Errorf("deriveFundMetadata(%q, %q) = %q/%q, want %q/%q",
				tt.path, tt.override, got.Name, got.Code, tt.wantName, tt.wantCode)
		}
	}
}

func TestKeepPages_FiltersByNumber(t *testing.T) {
	pages := []model.Page{
		{Number: 1, Text: "one"},
		{Number: 2, Text: "two"},
		{Number: 3, Text: "three"},
	}
	kept := keepPages(pages, []int{1, 3})
	if len(kept) != 2 {
		t.Fatalf("kept %d pages, want 2", len(kept))
	}
	if kept[0].Number != 1 || kept[1].Number != 3 {
		t.Errorf("kept pages %d, %d, want 1, 3", kept[0].Number, kept[1].Number)
	}
}

func TestStatusCounts_AllStatuses(t *testing.T) {
	results := []model.SectionHashResult{
		{Status: model.StatusNew},
		{Status: model.StatusNew},
		{Status: model.StatusUpdated},
		{Status: model.StatusReuse},
	}
	counts := statusCounts(results)
	if counts[model.StatusNew] != 2 || counts[model.StatusUpdated] != 1 || counts[model.StatusReuse] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestPageRange_Formats(t *testing.T) {
	if got := pageRange(nil); got != nil {
		t.Errorf("pageRange(nil) = %q, want nil", *got)
	}
	if got := pageRange([]int{4}); got == nil || *got != "4" {
		t.Errorf("pageRange([4]) = %v, want 4", got)
	}
	if got := pageRange([]int{7, 3, 5}); got == nil || *got != "3-7" {
		t.Errorf("pageRange([7 3 5]) = %v, want 3-7", got)
	}
}

func TestInferLanguage(t *testing.T) {
	zhOnly := []model.Section{{Lines: []string{"基金投資於亞洲股票市場並尋求長期資本增值"}}}
	if got := inferLanguage(zhOnly); got != "zh" {
		t.Errorf("Chinese-only document got language %q, want zh", got)
	}

	mixed := []model.Section{{Lines: []string{
		"基金 invests primarily in Asian equities 市場",
		strings.Repeat("latin text ", 5),
	}}}
	if got := inferLanguage(mixed); got != "mix" {
		t.Errorf("mixed document got language %q, want mix", got)
	}

	if got := inferLanguage(nil); got != "unknown" {
		t.Errorf("empty document got language %q, want unknown", got)
	}
}

func TestUniqueCount(t *testing.T) {
	if got := uniqueCount([]string{"a", "b", "a", "c", "b"}); got != 3 {
		t.Errorf("uniqueCount = %d, want 3", got)
	}
}
