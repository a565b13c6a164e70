package byteglass

import (
	"bytes"
	"errors"
	"testing"
)

func TestSegmentSplit(t *testing.T) {
	seg := &Segment{
		Raw:   []byte("abcdef"),
		Text:  []byte("ABCDEF"),
		Class: ClassPrintable,
	}

	left, err := seg.Split(2)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if string(left.Raw) != "ab" || string(left.Text) != "AB" {
		t.Errorf("expected left ab/AB, got %q/%q", left.Raw, left.Text)
	}
	if string(seg.Raw) != "cdef" || string(seg.Text) != "CDEF" {
		t.Errorf("expected remainder cdef/CDEF, got %q/%q", seg.Raw, seg.Text)
	}

	joinedRaw := append(append([]byte{}, left.Raw...), seg.Raw...)
	joinedText := append(append([]byte{}, left.Text...), seg.Text...)
	if !bytes.Equal(joinedRaw, []byte("abcdef")) || !bytes.Equal(joinedText, []byte("ABCDEF")) {
		t.Errorf("split parts do not reproduce the original: %q/%q", joinedRaw, joinedText)
	}
}

func TestSegmentSplitInconsistent(t *testing.T) {
	seg := &Segment{
		Raw:   []byte{0x07},
		Text:  []byte("^G"),
		Class: ClassControl,
	}
	if seg.Consistent() {
		t.Fatal("expected an inconsistent segment")
	}
	if _, err := seg.Split(1); !errors.Is(err, ErrSegmentSplit) {
		t.Errorf("expected ErrSegmentSplit, got %v", err)
	}
}

func TestSegmentSplitOutOfRange(t *testing.T) {
	seg := &Segment{Raw: []byte("ab"), Text: []byte("ab")}
	for _, k := range []int{0, 2, 5, -1} {
		if _, err := seg.Split(k); !errors.Is(err, ErrSegmentSplit) {
			t.Errorf("split at %d: expected ErrSegmentSplit, got %v", k, err)
		}
	}
}

func TestParseClass(t *testing.T) {
	for c := Class(0); int(c) < classCount; c++ {
		got, err := ParseClass(c.String())
		if err != nil {
			t.Fatalf("ParseClass(%q) failed: %v", c.String(), err)
		}
		if got != c {
			t.Errorf("ParseClass(%q) = %v, want %v", c.String(), got, c)
		}
	}
	if _, err := ParseClass("bogus"); !errors.Is(err, ErrUnknownClass) {
		t.Errorf("expected ErrUnknownClass, got %v", err)
	}
}
