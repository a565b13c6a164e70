package byteglass

import "bytes"

// PrintMode selects which face of a segment a printer renders.
type PrintMode uint8

const (
	// PrintText renders the processed display text.
	PrintText PrintMode = iota
	// PrintHex renders the raw bytes as lowercase hex pairs.
	PrintHex
)

// StyleRendering selects how style markers appear in printer output.
type StyleRendering uint8

const (
	// StylesLive emits style markers as live escape sequences.
	StylesLive StyleRendering = iota
	// StylesEscaped emits style markers in the `\e[..m` diagnostic
	// form, safe to inspect in a pager.
	StylesEscaped
	// StylesOmitted drops style markers entirely.
	StylesOmitted
)

const hexDigits = "0123456789abcdef"

// Printer is a pure element-to-text visitor. Several independent
// printers can traverse the same detached slice, so assembling a
// binary row (hex column plus processed column) needs only one chain
// walk per cycle.
type Printer struct {
	// Mode selects the segment face to render.
	Mode PrintMode

	// Styles selects how style markers render.
	Styles StyleRendering

	// Group inserts a space after every Group raw bytes in hex mode.
	// Zero disables grouping.
	Group int
}

// Print renders a detached slice into buf.
func (p Printer) Print(elems []Element, buf *bytes.Buffer) {
	count := 0
	for _, el := range elems {
		switch el.Kind {
		case ElemStyleStart:
			p.writeCode(el.Style.Sequence(), buf)
		case ElemStyleOnce:
			p.writeCode(el.Style.Closer(), buf)
		case ElemStyleStop:
			// Bookkeeping only.
		case ElemSegment:
			count = p.writeSegment(el.Seg, count, buf)
		}
	}
}

// Sprint renders a detached slice and returns the bytes.
func (p Printer) Sprint(elems []Element) []byte {
	var buf bytes.Buffer
	p.Print(elems, &buf)
	return buf.Bytes()
}

func (p Printer) writeSegment(seg *Segment, count int, buf *bytes.Buffer) int {
	switch p.Mode {
	case PrintText:
		buf.Write(seg.Text)
	case PrintHex:
		for _, b := range seg.Raw {
			if p.Group > 0 && count > 0 && count%p.Group == 0 {
				buf.WriteByte(' ')
			}
			buf.WriteByte(hexDigits[b>>4])
			buf.WriteByte(hexDigits[b&15])
			count++
		}
	}
	return count
}

func (p Printer) writeCode(code []byte, buf *bytes.Buffer) {
	if len(code) == 0 || p.Styles == StylesOmitted {
		return
	}
	if p.Styles == StylesLive {
		buf.Write(code)
		return
	}
	// Escaped diagnostic form: ESC shows as `\e`.
	for _, b := range code {
		if b == 0x1b {
			buf.WriteString(`\e`)
			continue
		}
		buf.WriteByte(b)
	}
}

// HexWidth returns the rendered width of n grouped hex bytes: two
// digits per byte plus one space between groups.
func (p Printer) HexWidth(n int) int {
	w := n * 2
	if p.Group > 0 && n > 0 {
		w += (n - 1) / p.Group
	}
	return w
}
