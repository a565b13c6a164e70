package byteglass

import (
	"bytes"
	"errors"
	"testing"
)

// parseAll runs the parser over input as one final window and returns
// the chain.
func parseAll(t *testing.T, cfg Config, input []byte) *Chain {
	t.Helper()
	parser := NewParser(NewRegistry(cfg))
	chain := NewChain()
	consumed, err := parser.Parse(chain, input, true)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if consumed != len(input) {
		t.Fatalf("final parse consumed %d of %d bytes", consumed, len(input))
	}
	return chain
}

func TestMatchKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		n     int
	}{
		{"A", KindPrintable, 1},
		{"AB", KindPrintable, 1},
		{"  x", KindSpace, 2},
		{"\t\tx", KindTab, 2},
		{"\n\n", KindNewline, 1},
		{"\r\rx", KindReturn, 2},
		{"\x00\x00x", KindNul, 2},
		{"\x07\x08x", KindControl, 2},
		{"\x7f", KindControl, 1},
		{"\xc3\xa9x", KindUTF8, 2},
		{"\xe2\x82\xac", KindUTF8, 3},
		{"\xf0\x9f\x92\xa9", KindUTF8, 4},
		{"\xff\xfeA", KindBinary, 2},
		{"\xc3A", KindBinary, 1},
		{"\x1b[31m", KindSGR, 5},
		{"\x1b[0m", KindSGR, 4},
		{"\x1b[2J", KindCSI, 4},
		{"\x1b[?25h", KindCSI, 6},
		{"\x1b]0;hi\x07", KindOSC, 7},
		{"\x1b]8;;\x1b\\", KindOSC, 7},
		{"\x1b(B", KindCharset, 3},
		{"\x1b7", KindPrivate, 2},
		{"\x1bc", KindEscOther, 2},
		{"\x1bM", KindEscOther, 2},
		{"\x1b", KindBareEsc, 1},
		{"\x1b\x01", KindBareEsc, 1},
	}
	for _, tt := range tests {
		kind, n, hold := match([]byte(tt.input), true)
		if hold {
			t.Errorf("%q: unexpected hold on final window", tt.input)
			continue
		}
		if kind != tt.kind || n != tt.n {
			t.Errorf("%q: expected %v/%d, got %v/%d", tt.input, tt.kind, tt.n, kind, n)
		}
	}
}

func TestMatchHoldsIncompleteSequences(t *testing.T) {
	incomplete := []string{
		"\x1b",
		"\x1b[31",
		"\x1b]0;title",
		"\x1b(",
		"\xc3",
		"\xe2\x82",
	}
	for _, in := range incomplete {
		if _, _, hold := match([]byte(in), false); !hold {
			t.Errorf("%q: expected hold on non-final window", in)
		}
	}
}

// A lone ESC in front of a byte that introduces nothing classifies as
// a bare escape control character, not a malformed sequence.
func TestBareEscapeFallback(t *testing.T) {
	kind, n, hold := match([]byte("\x1b\x01rest"), false)
	if hold {
		t.Fatal("unexpected hold")
	}
	if kind != KindBareEsc || n != 1 {
		t.Errorf("expected bare escape of 1 byte, got %v/%d", kind, n)
	}
}

// The alternation covers all 256 byte values, so a full-range input
// must parse completely with exact byte accounting.
func TestParseByteAccounting(t *testing.T) {
	input := make([]byte, 256)
	for i := range input {
		input[i] = byte(i)
	}
	chain := parseAll(t, DefaultConfig(), input)
	if chain.Buffered() != 256 {
		t.Errorf("expected 256 buffered bytes, got %d", chain.Buffered())
	}
}

// Chunking must never change the classification result.
func TestParseChunkIndependence(t *testing.T) {
	input := []byte("plain \x1b[1;31mbold red\x1b[0m\ntab\there café \x07\x00\x00\xff\xfe\r\n\x1b]0;t\x07tail")

	render := func(chunkSize int) string {
		parser := NewParser(NewRegistry(DefaultConfig()))
		chain := NewChain()
		var buf Buffer

		for off := 0; off < len(input); off += chunkSize {
			end := off + chunkSize
			if end > len(input) {
				end = len(input)
			}
			buf.Append(input[off:end], end == len(input))
			consumed, err := parser.Parse(chain, buf.Bytes(), buf.Final())
			if err != nil {
				t.Fatalf("chunk size %d: parse failed: %v", chunkSize, err)
			}
			if err := buf.RetainSuffix(buf.Bytes()[consumed:]); err != nil {
				t.Fatalf("chunk size %d: %v", chunkSize, err)
			}
		}
		if buf.Len() != 0 {
			t.Fatalf("chunk size %d: %d bytes left unconsumed", chunkSize, buf.Len())
		}

		if chain.Buffered() != len(input) {
			t.Fatalf("chunk size %d: %d bytes buffered, want %d", chunkSize, chain.Buffered(), len(input))
		}
		elems, err := chain.DetachBytes(chain.Buffered(), true)
		if err != nil {
			t.Fatalf("chunk size %d: drain failed: %v", chunkSize, err)
		}
		// A run split by a chunk boundary becomes two segments with the
		// same text but separate style brackets, so compare unstyled.
		p := Printer{Mode: PrintText, Styles: StylesOmitted}
		return string(p.Sprint(elems))
	}

	whole := render(len(input))
	for _, size := range []int{1, 7} {
		if got := render(size); got != whole {
			t.Errorf("chunk size %d diverges:\n  got  %q\n  want %q", size, got, whole)
		}
	}
}

// Styled text: the SGR annotation (enter red), the printable, and a
// distinct reset annotation come out as separate segments.
func TestParseStyledText(t *testing.T) {
	chain := parseAll(t, DefaultConfig(), []byte("\x1b[31mA\x1b[0m"))

	elems, err := chain.DetachBytes(chain.Buffered(), true)
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}

	var segs []*Segment
	for _, el := range elems {
		if el.Kind == ElemSegment {
			segs = append(segs, el.Seg)
		}
	}
	// Introducer + params for each escape, plus the printable.
	if len(segs) != 5 {
		t.Fatalf("expected 5 segments, got %d", len(segs))
	}
	if segs[0].Class != ClassEscape || !segs[0].Style.Equal(testRed) {
		t.Errorf("first escape should open red, got class %v style %+v", segs[0].Class, segs[0].Style)
	}
	if string(segs[2].Text) != "A" || segs[2].Class != ClassPrintable {
		t.Errorf("expected printable A, got %q (%v)", segs[2].Text, segs[2].Class)
	}
	if segs[3].Class != ClassEscape || !segs[3].Style.IsZero() {
		t.Errorf("reset escape should carry the zero style, got %+v", segs[3].Style)
	}
	raw := 0
	for _, s := range segs {
		raw += s.Len()
	}
	if raw != len("\x1b[31mA\x1b[0m") {
		t.Errorf("segments account for %d bytes, want %d", raw, len("\x1b[31mA\x1b[0m"))
	}
}

// Mixed ASCII and UTF-8: three printable segments plus one multi-byte
// segment whose display text is the decoded character.
func TestParseUTF8Text(t *testing.T) {
	chain := parseAll(t, DefaultConfig(), []byte("café"))

	elems, err := chain.DetachBytes(chain.Buffered(), true)
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	var printable, multi []*Segment
	for _, el := range elems {
		if el.Kind != ElemSegment {
			continue
		}
		switch el.Seg.Class {
		case ClassPrintable:
			printable = append(printable, el.Seg)
		case ClassUTF8:
			multi = append(multi, el.Seg)
		}
	}
	if len(printable) != 3 {
		t.Errorf("expected 3 printable segments, got %d", len(printable))
	}
	if len(multi) != 1 {
		t.Fatalf("expected 1 UTF-8 segment, got %d", len(multi))
	}
	if string(multi[0].Text) != "é" || multi[0].Len() != 2 {
		t.Errorf("expected 2-byte segment displaying é, got %q (%d bytes)", multi[0].Text, multi[0].Len())
	}
}

func TestParserTrace(t *testing.T) {
	parser := NewParser(NewRegistry(DefaultConfig()))
	var kinds []Kind
	parser.SetTrace(func(kind Kind, raw []byte) {
		kinds = append(kinds, kind)
	})

	chain := NewChain()
	if _, err := parser.Parse(chain, []byte("a \x07"), true); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []Kind{KindPrintable, KindSpace, KindControl}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(kinds))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("match %d: expected %v, got %v", i, want[i], kinds[i])
		}
	}
}

func TestBufferRetainSuffix(t *testing.T) {
	var buf Buffer
	buf.Append([]byte("abcdef"), false)

	if err := buf.RetainSuffix(buf.Bytes()[4:]); err != nil {
		t.Fatalf("valid suffix rejected: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte("ef")) {
		t.Errorf("expected ef retained, got %q", buf.Bytes())
	}

	if err := buf.RetainSuffix([]byte("xx")); !errors.Is(err, ErrParserDesync) {
		t.Errorf("expected ErrParserDesync for a non-suffix, got %v", err)
	}
	if err := buf.RetainSuffix([]byte("longer than buffer")); !errors.Is(err, ErrParserDesync) {
		t.Errorf("expected ErrParserDesync for an oversized remainder, got %v", err)
	}
}
