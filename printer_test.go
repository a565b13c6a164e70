package byteglass

import "testing"

func detachAll(t *testing.T, c *Chain) []Element {
	t.Helper()
	elems, err := c.DetachBytes(c.Buffered(), true)
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	return elems
}

func TestPrinterTextModes(t *testing.T) {
	c := NewChain()
	c.Attach(styledSeg("hi", testRed))
	elems := detachAll(t, c)

	tests := []struct {
		styles StyleRendering
		want   string
	}{
		{StylesLive, "\x1b[31mhi\x1b[0m"},
		{StylesEscaped, `\e[31mhi\e[0m`},
		{StylesOmitted, "hi"},
	}
	for _, tt := range tests {
		p := Printer{Mode: PrintText, Styles: tt.styles}
		if got := string(p.Sprint(elems)); got != tt.want {
			t.Errorf("styles %d: expected %q, got %q", tt.styles, tt.want, got)
		}
	}
}

func TestPrinterHexGrouping(t *testing.T) {
	c := NewChain()
	c.Attach(plainSeg("abcdef"))
	elems := detachAll(t, c)

	p := Printer{Mode: PrintHex, Styles: StylesOmitted, Group: 4}
	if got := string(p.Sprint(elems)); got != "61626364 6566" {
		t.Errorf("expected grouped hex, got %q", got)
	}
}

// Grouping counts raw bytes across segment boundaries, not per
// segment.
func TestPrinterHexGroupingAcrossSegments(t *testing.T) {
	c := NewChain()
	c.Attach(plainSeg("abc"))
	c.Attach(styledSeg("de", testRed))
	elems := detachAll(t, c)

	p := Printer{Mode: PrintHex, Styles: StylesOmitted, Group: 4}
	if got := string(p.Sprint(elems)); got != "61626364 65" {
		t.Errorf("expected group break after 4 bytes, got %q", got)
	}
}

func TestPrinterHexWidth(t *testing.T) {
	p := Printer{Mode: PrintHex, Group: 4}
	tests := []struct{ n, want int }{
		{0, 0},
		{1, 2},
		{4, 8},
		{5, 11},
		{16, 35},
	}
	for _, tt := range tests {
		if got := p.HexWidth(tt.n); got != tt.want {
			t.Errorf("HexWidth(%d): expected %d, got %d", tt.n, tt.want, got)
		}
	}
}
