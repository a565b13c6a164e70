package byteglass

import (
	"fmt"
	"unicode/utf8"
)

// Parser classifies raw bytes by running an ordered alternation of
// byte patterns over the input window. The alternation is total: every
// byte value matches some pattern, so classification can only stop at
// a window end, never in the middle. Sequences that may continue past
// the window (escape sequences, multi-byte characters) are held back
// until more bytes arrive, unless the window is final.
type Parser struct {
	registry *Registry
	trace    func(kind Kind, raw []byte)
}

// NewParser builds a parser over one template registry.
func NewParser(reg *Registry) *Parser {
	return &Parser{registry: reg}
}

// SetTrace installs a hook called once per match with the resolved
// kind and the raw bytes it consumed.
func (p *Parser) SetTrace(fn func(kind Kind, raw []byte)) {
	p.trace = fn
}

// Parse classifies data from the front, attaching the substituted
// segments to chain, and returns how many bytes it consumed. A short
// count without an error means the tail is an incomplete sequence that
// must be retried with more input. When final is set nothing is held
// back and the whole window is consumed.
func (p *Parser) Parse(chain *Chain, data []byte, final bool) (int, error) {
	off := 0
	for off < len(data) {
		kind, n, hold := match(data[off:], final)
		if hold {
			break
		}
		if n <= 0 {
			return off, fmt.Errorf("%w: no pattern consumed input at offset %d (byte %#02x)", ErrParserDesync, off, data[off])
		}
		tpl, err := p.registry.Lookup(kind)
		if err != nil {
			return off, err
		}
		raw := data[off : off+n]
		if p.trace != nil {
			p.trace(kind, raw)
		}
		for _, seg := range tpl.Substitute(raw) {
			chain.Attach(seg)
		}
		off += n
	}
	return off, nil
}

// match runs the alternation against the head of data. It returns the
// matched kind and length, or hold when the head is a valid prefix of
// a longer sequence and final is unset.
func match(data []byte, final bool) (kind Kind, n int, hold bool) {
	b := data[0]
	switch {
	case b >= 0x80:
		if n, hold := utf8Scan(data, final); hold {
			return 0, 0, true
		} else if n > 0 {
			return KindUTF8, n, false
		}
		return KindBinary, binaryRun(data, final), false
	case b == 0x1b:
		return matchEscape(data, final)
	case b == 0x00:
		return KindNul, run(data, func(c byte) bool { return c == 0x00 }), false
	case b == '\n':
		return KindNewline, 1, false
	case b == '\r':
		return KindReturn, run(data, func(c byte) bool { return c == '\r' }), false
	case b == '\t':
		return KindTab, run(data, func(c byte) bool { return c == '\t' }), false
	case b == ' ':
		return KindSpace, run(data, func(c byte) bool { return c == ' ' }), false
	case b < 0x20 || b == 0x7f:
		return KindControl, run(data, isOpaqueControl), false
	default:
		// 0x21..0x7e, one byte at a time so style boundaries and
		// window splits stay trivial.
		return KindPrintable, 1, false
	}
}

// isOpaqueControl reports C0 bytes (and DEL) with no dedicated
// pattern of their own.
func isOpaqueControl(c byte) bool {
	switch c {
	case 0x00, '\t', '\n', '\r', 0x1b:
		return false
	}
	return c < 0x20 || c == 0x7f
}

// run returns the length of the longest prefix matching pred. The
// first byte is known to match.
func run(data []byte, pred func(byte) bool) int {
	i := 1
	for i < len(data) && pred(data[i]) {
		i++
	}
	return i
}

// utf8Scan resolves a possible multi-byte sequence at the head of
// data: n > 0 means a complete well-formed sequence of n bytes, hold
// means a well-formed prefix is cut off by the window end.
func utf8Scan(data []byte, final bool) (n int, hold bool) {
	var want int
	switch b := data[0]; {
	case b >= 0xc2 && b <= 0xdf:
		want = 2
	case b >= 0xe0 && b <= 0xef:
		want = 3
	case b >= 0xf0 && b <= 0xf4:
		want = 4
	default:
		return 0, false
	}
	if len(data) < want {
		for _, c := range data[1:] {
			if c&0xc0 != 0x80 {
				return 0, false
			}
		}
		return 0, !final
	}
	// Malformed input decodes with size 1, so a size mismatch covers
	// overlong forms and surrogate halves. U+FFFD itself is a valid
	// three-byte sequence and passes.
	if _, size := utf8.DecodeRune(data[:want]); size != want {
		return 0, false
	}
	return want, false
}

// binaryRun consumes high bytes that do not form well-formed
// multi-byte sequences, stopping where one begins (or may begin, at a
// non-final window end).
func binaryRun(data []byte, final bool) int {
	i := 1
	for i < len(data) && data[i] >= 0x80 {
		if n, hold := utf8Scan(data[i:], final); n > 0 || hold {
			break
		}
		i++
	}
	return i
}

// matchEscape classifies a sequence introduced by ESC. Incomplete
// sequences hold at a non-final window end; malformed or truncated
// ones fall back to a bare one-byte introducer so the following bytes
// reclassify on their own.
func matchEscape(data []byte, final bool) (Kind, int, bool) {
	if len(data) < 2 {
		if !final {
			return 0, 0, true
		}
		return KindBareEsc, 1, false
	}

	switch b := data[1]; {
	case b == '[':
		return matchCSI(data, final)
	case b == ']':
		return matchOSC(data, final)
	case b >= 0x20 && b <= 0x2f:
		return matchCharset(data, final)
	case b >= 0x30 && b <= 0x3f:
		return KindPrivate, 2, false
	case b >= 0x40 && b <= 0x7e:
		return KindEscOther, 2, false
	default:
		return KindBareEsc, 1, false
	}
}

// matchCSI consumes ESC [ parameters intermediates final. A final byte
// of 'm' selects the style-decoding template.
func matchCSI(data []byte, final bool) (Kind, int, bool) {
	i := 2
	for i < len(data) && data[i] >= 0x30 && data[i] <= 0x3f {
		i++
	}
	for i < len(data) && data[i] >= 0x20 && data[i] <= 0x2f {
		i++
	}
	if i >= len(data) {
		if !final {
			return 0, 0, true
		}
		return KindBareEsc, 1, false
	}
	if data[i] < 0x40 || data[i] > 0x7e {
		return KindBareEsc, 1, false
	}
	if data[i] == 'm' {
		return KindSGR, i + 1, false
	}
	return KindCSI, i + 1, false
}

// matchOSC consumes ESC ] ... terminated by BEL or ST (ESC \).
func matchOSC(data []byte, final bool) (Kind, int, bool) {
	for i := 2; i < len(data); i++ {
		switch data[i] {
		case 0x07:
			return KindOSC, i + 1, false
		case 0x1b:
			if i+1 >= len(data) {
				if !final {
					return 0, 0, true
				}
				return KindBareEsc, 1, false
			}
			if data[i+1] == '\\' {
				return KindOSC, i + 2, false
			}
			// A new escape cuts the unterminated string short.
			return KindOSC, i, false
		}
	}
	if !final {
		return 0, 0, true
	}
	return KindBareEsc, 1, false
}

// matchCharset consumes ESC intermediates final, the character-set and
// related designation sequences.
func matchCharset(data []byte, final bool) (Kind, int, bool) {
	i := 1
	for i < len(data) && data[i] >= 0x20 && data[i] <= 0x2f {
		i++
	}
	if i >= len(data) {
		if !final {
			return 0, 0, true
		}
		return KindBareEsc, 1, false
	}
	if data[i] < 0x30 || data[i] > 0x7e {
		return KindBareEsc, 1, false
	}
	return KindCharset, i + 1, false
}
