package byteglass

import "testing"

func TestDecodeSGR(t *testing.T) {
	tests := []struct {
		raw  string
		want Style
	}{
		{"\x1b[31m", Style{Fg: Color{Mode: ColorStandard, Index: 1}}},
		{"\x1b[0m", Style{}},
		{"\x1b[m", Style{}},
		{"\x1b[1m", Style{Attrs: AttrBold}},
		{"\x1b[1;4;32m", Style{
			Fg:    Color{Mode: ColorStandard, Index: 2},
			Attrs: AttrBold | AttrUnderline,
		}},
		// A color directly after 4 must not be read as an underline
		// sub-parameter.
		{"\x1b[4;32m", Style{
			Fg:    Color{Mode: ColorStandard, Index: 2},
			Attrs: AttrUnderline,
		}},
		{"\x1b[4;38;5;208m", Style{
			Fg:    Color{Mode: ColorIndexed, Index: 208},
			Attrs: AttrUnderline,
		}},
		{"\x1b[4:3m", Style{Attrs: AttrUnderline}},
		{"\x1b[91m", Style{Fg: Color{Mode: ColorStandard, Index: 9}}},
		{"\x1b[41m", Style{Bg: Color{Mode: ColorStandard, Index: 1}}},
		{"\x1b[38;5;208m", Style{Fg: Color{Mode: ColorIndexed, Index: 208}}},
		{"\x1b[38;2;10;20;30m", Style{Fg: Color{Mode: ColorRGB, R: 10, G: 20, B: 30}}},
		{"\x1b[1;31;0m", Style{}},
		{"\x1b[1;22m", Style{}},
	}
	for _, tt := range tests {
		if got := decodeSGR([]byte(tt.raw)); !got.Equal(tt.want) {
			t.Errorf("%q: expected %+v, got %+v", tt.raw, tt.want, got)
		}
	}
}

func TestSplitSGR(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"\x1b[m", []string{""}},
		{"\x1b[31m", []string{"31"}},
		{"\x1b[1;4;32m", []string{"1", "4", "32"}},
		{"\x1b[38;5;208m", []string{"38;5;208"}},
		{"\x1b[4;38;2;10;20;30m", []string{"4", "38;2;10;20;30"}},
		{"\x1b[4:3;31m", []string{"4:3", "31"}},
		{"\x1b[38;2;10m", []string{"38;2;10"}},
	}
	for _, tt := range tests {
		got := splitSGR([]byte(tt.raw))
		if len(got) != len(tt.want) {
			t.Errorf("%q: expected %d pieces, got %d", tt.raw, len(tt.want), len(got))
			continue
		}
		for i := range got {
			if string(got[i]) != tt.want[i] {
				t.Errorf("%q piece %d: expected %q, got %q", tt.raw, i, tt.want[i], got[i])
			}
		}
	}
}

// A later parameter overrides an earlier one the way a terminal would
// apply them in order.
func TestDecodeSGRLastColorWins(t *testing.T) {
	got := decodeSGR([]byte("\x1b[31;32m"))
	want := Color{Mode: ColorStandard, Index: 2}
	if got.Fg != want {
		t.Errorf("expected green to win, got %+v", got.Fg)
	}
}
