package sections

import (
	"reflect"
	"testing"

	"github.com/fundclean/fundclean/internal/model"
)

func page(n int, lines ...string) model.Page {
	text := ""
	for i, l := range lines {
		if i > 0 {
			text += "\n"
		}
		text += l
	}
	return model.Page{Number: n, Text: text}
}

func names(sections []model.Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Name
	}
	return out
}

func TestSegmenter_BasicHeadings(t *testing.T) {
	seg := NewSegmenter(nil)

	got := seg.Segment([]model.Page{
		page(1, "Important Information", "foo bar", "Top 10 Holdings", "AAPL Info Tech 5.2"),
	})

	want := []string{"important_information", "top_holdings"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("section names = %v, want %v", names(got), want)
	}
	if len(got[0].Lines) != 1 || got[0].Lines[0] != "foo bar" {
		t.Errorf("first section lines = %v", got[0].Lines)
	}
	if len(got[1].Lines) != 1 || got[1].Lines[0] != "AAPL Info Tech 5.2" {
		t.Errorf("second section lines = %v", got[1].Lines)
	}
	if got[0].Title != "Important Information" {
		t.Errorf("title = %q", got[0].Title)
	}
}

func TestSegmenter_IntroBeforeFirstHeading(t *testing.T) {
	seg := NewSegmenter(nil)

	got := seg.Segment([]model.Page{
		page(1, "Fund monthly report", "Important Information", "body"),
	})

	want := []string{IntroSectionName, "important_information"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("section names = %v, want %v", names(got), want)
	}
	if got[0].Title != "Document Introduction" {
		t.Errorf("intro title = %q", got[0].Title)
	}
}

func TestSegmenter_EmptyIntroSuppressed(t *testing.T) {
	seg := NewSegmenter(nil)

	got := seg.Segment([]model.Page{page(1, "Important Information", "body")})
	if len(got) != 1 || got[0].Name != "important_information" {
		t.Fatalf("sections = %v", names(got))
	}
}

func TestSegmenter_ChineseHeadings(t *testing.T) {
	seg := NewSegmenter(nil)

	got := seg.Segment([]model.Page{
		page(1, "重要事項", "本基金須承受市場風險", "十大持股", "騰訊控股 資訊科技 9.8"),
	})

	want := []string{"important_information", "top_holdings"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("section names = %v, want %v", names(got), want)
	}
}

func TestSegmenter_RecurringHeadingsKeptSeparate(t *testing.T) {
	seg := NewSegmenter(nil)

	got := seg.Segment([]model.Page{
		page(1, "Top 10 Holdings", "Apple Inc 5.2", "Fees and Charges", "1% p.a."),
		page(2, "Top 10 Holdings", "US Treasury Bond 2.1"),
	})

	want := []string{"top_holdings", "fees_charges", "top_holdings"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("section names = %v, want %v", names(got), want)
	}
}

func TestSegmenter_PageSpanAcrossPages(t *testing.T) {
	seg := NewSegmenter(nil)

	got := seg.Segment([]model.Page{
		page(2, "Important Information", "first page body"),
		page(3, "continued body"),
	})

	if len(got) != 1 {
		t.Fatalf("expected one section, got %v", names(got))
	}
	if !reflect.DeepEqual(got[0].Pages, []int{2, 3}) {
		t.Errorf("Pages = %v, want [2 3]", got[0].Pages)
	}
}

func TestSegmenter_HeadingLineNotInBody(t *testing.T) {
	seg := NewSegmenter(nil)

	got := seg.Segment([]model.Page{page(1, "intro text", "Top 10 Holdings", "Apple Inc 5.2")})
	for _, s := range got {
		for _, line := range s.Lines {
			if line == "Top 10 Holdings" {
				t.Error("heading line leaked into a section body")
			}
		}
	}
}

func TestSegmenter_EmptyAndAllFilteredInput(t *testing.T) {
	seg := NewSegmenter(nil)

	if got := seg.Segment(nil); got != nil {
		t.Errorf("Segment(nil) = %v, want nil", got)
	}
	if got := seg.Segment([]model.Page{page(1, "   ", "")}); got != nil {
		t.Errorf("blank-only input = %v, want nil", got)
	}
}
