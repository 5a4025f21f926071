package normalize

import (
	"reflect"
	"testing"
)

func TestLine_WhitespaceAndPunctuation(t *testing.T) {
	raw := "  Hello、world！   "
	got := Line(raw)
	want := "Hello, world!"
	if got != want {
		t.Errorf("Line(%q) = %q, want %q", raw, got, want)
	}
}

func TestLine_FullwidthForms(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"（５．２％）", "(5.2%)"},
		{"fees：charges", "fees: charges"},
		{"a；b？c", "a; b?c"},
		{"中國。", "中國."},
		// Halfwidth ideographic punctuation, as some extractors emit it.
		{"中國｡", "中國."},
		{"股票､債券", "股票, 債券"},
	}
	for _, tt := range tests {
		if got := Line(tt.in); got != tt.want {
			t.Errorf("Line(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLine_CollapsesWhitespaceRuns(t *testing.T) {
	got := Line("Top\t10   Holdings　十大持股")
	want := "Top 10 Holdings 十大持股"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLine_SeparatorSpacing(t *testing.T) {
	got := Line("one,two;three:four")
	want := "one, two; three: four"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLines_FiltersEmpty(t *testing.T) {
	lines := []string{"   foo   ", "", "  ", "bar"}
	got := Lines(lines)
	want := []string{"foo", "bar"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines(%v) = %v, want %v", lines, got, want)
	}
}
