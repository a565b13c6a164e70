package byteglass

import "fmt"

// ElementKind discriminates the chain's tagged element union.
type ElementKind uint8

const (
	// ElemSegment is a classified run of bytes.
	ElemSegment ElementKind = iota
	// ElemStyleStart opens a style bracket; it renders the style's
	// escape sequence and pushes the active-style stack.
	ElemStyleStart
	// ElemStyleStop closes a style bracket; pure bookkeeping, renders
	// nothing.
	ElemStyleStop
	// ElemStyleOnce renders the style's closing sequence exactly once.
	ElemStyleOnce
)

// Element is one entry of the chain: a segment or a zero-length style
// marker.
type Element struct {
	Kind  ElementKind
	Seg   *Segment // ElemSegment only
	Style Style    // marker elements only
}

// Chain is the ordered buffer of segments and style markers awaiting
// output. Its total byte length is the sum of segment raw lengths;
// markers contribute nothing. The chain tracks which styles are open
// at the detach frontier so that every detached slice can be
// re-bracketed to render correctly on its own.
//
// The chain is single-threaded by design: it is mutated only by the
// read loop that alternates parsing and detaching.
type Chain struct {
	elems    []Element
	head     int
	buffered int
	active   []Style
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Buffered returns the number of content bytes currently held.
func (c *Chain) Buffered() int {
	return c.buffered
}

// Attach appends a segment. Unstyled segments attach bare; styled ones
// are wrapped in start/stop markers plus a trailing one-use closer.
func (c *Chain) Attach(seg *Segment) {
	if seg.Style.IsZero() {
		c.push(Element{Kind: ElemSegment, Seg: seg})
		c.buffered += seg.Len()
		return
	}
	c.push(Element{Kind: ElemStyleStart, Style: seg.Style})
	c.push(Element{Kind: ElemSegment, Seg: seg})
	c.push(Element{Kind: ElemStyleStop, Style: seg.Style})
	c.push(Element{Kind: ElemStyleOnce, Style: seg.Style})
	c.buffered += seg.Len()
}

// DetachBytes removes exactly n content bytes' worth of elements and
// returns them re-bracketed with style markers: styles already open at
// call start are re-opened in front, styles still open at call end are
// closed behind, so the slice renders correctly regardless of where
// the chunk boundaries fell.
//
// It fails with ErrSuspended when fewer than n bytes are buffered and
// force is false, and with ErrExhausted when the chain holds no data
// at all. With force set it returns whatever remains even if short
// (the end-of-stream drain).
func (c *Chain) DetachBytes(n int, force bool) ([]Element, error) {
	if c.buffered == 0 {
		return nil, ErrExhausted
	}
	if c.buffered < n && !force {
		return nil, fmt.Errorf("%w: want %d bytes, have %d", ErrSuspended, n, c.buffered)
	}

	out := make([]Element, 0, 8)
	for _, st := range c.active {
		out = append(out, Element{Kind: ElemStyleStart, Style: st})
	}

	budget := n
walk:
	for c.head < len(c.elems) {
		el := c.elems[c.head]
		switch el.Kind {
		case ElemStyleStart:
			// A style boundary landing exactly at the end of the
			// window defers to the next call.
			if budget <= 0 {
				break walk
			}
			c.active = append(c.active, el.Style)
			out = append(out, el)
			c.pop()

		case ElemStyleStop:
			c.dropActive(el.Style)
			out = append(out, el)
			c.pop()

		case ElemStyleOnce:
			out = append(out, el)
			c.pop()

		case ElemSegment:
			seg := el.Seg
			if seg.Len() == 0 {
				// Detail segments ride along with the byte they
				// annotate.
				out = append(out, el)
				c.pop()
				continue
			}
			if budget <= 0 {
				break walk
			}
			if seg.Len() <= budget {
				budget -= seg.Len()
				c.buffered -= seg.Len()
				out = append(out, el)
				c.pop()
				continue
			}
			left, err := seg.Split(budget)
			if err != nil {
				return nil, err
			}
			c.buffered -= budget
			budget = 0
			out = append(out, Element{Kind: ElemSegment, Seg: left})
		}
	}

	// On a forced drain with no content left, flush trailing markers
	// and zero-length detail segments. A detail bracket whose budget
	// ran out exactly at end of stream would otherwise stay deferred
	// forever, dropping the last byte's annotation.
	if force && c.buffered == 0 {
		for c.head < len(c.elems) {
			el := c.elems[c.head]
			switch el.Kind {
			case ElemStyleStart:
				c.active = append(c.active, el.Style)
			case ElemStyleStop:
				c.dropActive(el.Style)
			}
			out = append(out, el)
			c.pop()
		}
	}

	for i := len(c.active) - 1; i >= 0; i-- {
		out = append(out, Element{Kind: ElemStyleOnce, Style: c.active[i]})
	}
	return out, nil
}

// DetachLine scans forward for a newline-flagged segment and detaches
// exactly that many bytes. Without force it fails with ErrSuspended
// until a newline has been buffered; with force it drains whatever
// remains, so a final unterminated line is never dropped.
func (c *Chain) DetachLine(force bool) ([]Element, error) {
	if c.buffered == 0 {
		return nil, ErrExhausted
	}

	n := 0
	found := false
	for i := c.head; i < len(c.elems); i++ {
		el := c.elems[i]
		if el.Kind != ElemSegment {
			continue
		}
		n += el.Seg.Len()
		if el.Seg.Newline {
			found = true
			break
		}
	}
	if !found {
		if !force {
			return nil, fmt.Errorf("%w: no newline buffered", ErrSuspended)
		}
		n = c.buffered
	}
	return c.DetachBytes(n, force)
}

// ContentLength sums the raw byte lengths of a detached slice.
func ContentLength(elems []Element) int {
	n := 0
	for _, el := range elems {
		if el.Kind == ElemSegment {
			n += el.Seg.Len()
		}
	}
	return n
}

func (c *Chain) push(el Element) {
	c.elems = append(c.elems, el)
}

func (c *Chain) pop() {
	c.elems[c.head] = Element{}
	c.head++
	// Reclaim the consumed prefix once it dominates the backing slice.
	if c.head > 64 && c.head*2 >= len(c.elems) {
		c.elems = append(c.elems[:0], c.elems[c.head:]...)
		c.head = 0
	}
}

// dropActive removes the most recent matching entry from the
// active-style stack.
func (c *Chain) dropActive(st Style) {
	for i := len(c.active) - 1; i >= 0; i-- {
		if c.active[i].Equal(st) {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}
