package byteglass

import "fmt"

// Class is the byte category a segment was classified into.
type Class uint8

const (
	ClassControl Class = iota
	ClassEscape
	ClassWhitespace
	ClassUTF8
	ClassBinary
	ClassPrintable

	classCount = int(ClassPrintable) + 1
)

// String returns the class name used in legends and diagnostics.
func (c Class) String() string {
	switch c {
	case ClassControl:
		return "control"
	case ClassEscape:
		return "escape"
	case ClassWhitespace:
		return "whitespace"
	case ClassUTF8:
		return "utf8"
	case ClassBinary:
		return "binary"
	case ClassPrintable:
		return "printable"
	}
	return "unknown"
}

// ParseClass converts a class name back to its Class. Used by the CLI
// -focus / -ignore flags.
func ParseClass(s string) (Class, error) {
	for c := Class(0); int(c) < classCount; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// Segment is a classified run of raw bytes together with the text that
// displays in its place and the style it opens with.
//
// A segment is consistent when its display text has exactly as many
// bytes as its raw run; only consistent segments may be split. Detail
// segments (the mnemonic or hex annotation attached to a control byte)
// are deliberately inconsistent and must never be split.
type Segment struct {
	// Raw is the run of input bytes this segment stands for. Detail
	// segments carry no raw bytes.
	Raw []byte

	// Text is the processed display text shown in place of Raw.
	Text []byte

	// Style is the opening style; the zero style means unstyled.
	Style Style

	// Class is the byte category label.
	Class Class

	// Newline marks the segment that terminates a text-mode line.
	Newline bool
}

// Len returns the raw byte length; markers and detail segments
// contribute zero to chain accounting.
func (s *Segment) Len() int {
	return len(s.Raw)
}

// Consistent reports whether display text and raw bytes are the same
// length, making the segment splittable at any byte offset.
func (s *Segment) Consistent() bool {
	return len(s.Text) == len(s.Raw)
}

// Split cuts the segment at byte offset k: it returns the immutable
// left part and mutates the receiver into the remainder. Splitting an
// inconsistent segment, or splitting outside (0, Len), is a fatal
// error — a misaligned split would silently corrupt the output.
func (s *Segment) Split(k int) (*Segment, error) {
	if !s.Consistent() {
		return nil, fmt.Errorf("%w: segment %q is not byte-aligned", ErrSegmentSplit, s.Text)
	}
	if k <= 0 || k >= s.Len() {
		return nil, fmt.Errorf("%w: offset %d outside segment of %d bytes", ErrSegmentSplit, k, s.Len())
	}
	left := &Segment{
		Raw:   s.Raw[:k],
		Text:  s.Text[:k],
		Style: s.Style,
		Class: s.Class,
	}
	s.Raw = s.Raw[k:]
	s.Text = s.Text[k:]
	return left, nil
}
