package byteglass

import "strconv"

// Attr is a bitmask of SGR text attributes.
type Attr uint16

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrHidden
	AttrStrike
)

// ColorMode discriminates the three SGR color forms plus "no color".
type ColorMode uint8

const (
	// ColorNone means the terminal default.
	ColorNone ColorMode = iota
	// ColorStandard is one of the 16 named colors (SGR 30-37, 90-97).
	ColorStandard
	// ColorIndexed is a 256-palette index (SGR 38;5;n).
	ColorIndexed
	// ColorRGB is a 24-bit true color (SGR 38;2;r;g;b).
	ColorRGB
)

// Color is one foreground or background color value.
type Color struct {
	Mode    ColorMode
	Index   uint8
	R, G, B uint8
}

// IsZero reports whether the color is the terminal default.
func (c Color) IsZero() bool {
	return c.Mode == ColorNone
}

// params appends the SGR parameters selecting this color. base is 30
// for foreground and 40 for background.
func (c Color) params(dst []string, base int) []string {
	switch c.Mode {
	case ColorStandard:
		if c.Index < 8 {
			return append(dst, strconv.Itoa(base+int(c.Index)))
		}
		return append(dst, strconv.Itoa(base+60+int(c.Index-8)))
	case ColorIndexed:
		return append(dst, strconv.Itoa(base+8), "5", strconv.Itoa(int(c.Index)))
	case ColorRGB:
		return append(dst, strconv.Itoa(base+8), "2",
			strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B)))
	}
	return dst
}

// Style is an opaque color-sequence value: a foreground, a background,
// and an attribute bitmask. The zero Style renders nothing.
//
// Style is comparable; the chain's active-style stack relies on == for
// dedup and matching.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// IsZero reports whether the style is a no-op (no color, no attributes).
func (s Style) IsZero() bool {
	return s == Style{}
}

// Equal reports whether two styles select the same rendition.
func (s Style) Equal(o Style) bool {
	return s == o
}

// HasAttr returns true if the specified attribute is set.
func (s Style) HasAttr(a Attr) bool {
	return s.Attrs&a != 0
}

// With returns a copy of the style with the attribute set.
func (s Style) With(a Attr) Style {
	s.Attrs |= a
	return s
}

// Merge overlays o onto s: colors and attributes set in o win, the
// rest is kept from s.
func (s Style) Merge(o Style) Style {
	out := s
	if !o.Fg.IsZero() {
		out.Fg = o.Fg
	}
	if !o.Bg.IsZero() {
		out.Bg = o.Bg
	}
	out.Attrs |= o.Attrs
	return out
}

// attrParams maps attribute bits to their SGR parameter, in SGR order.
var attrParams = []struct {
	attr  Attr
	param string
}{
	{AttrBold, "1"},
	{AttrDim, "2"},
	{AttrItalic, "3"},
	{AttrUnderline, "4"},
	{AttrBlink, "5"},
	{AttrReverse, "7"},
	{AttrHidden, "8"},
	{AttrStrike, "9"},
}

// Sequence assembles the SGR escape sequence selecting this style.
// The zero style assembles to nil.
func (s Style) Sequence() []byte {
	if s.IsZero() {
		return nil
	}
	params := make([]string, 0, 8)
	for _, ap := range attrParams {
		if s.HasAttr(ap.attr) {
			params = append(params, ap.param)
		}
	}
	params = s.Fg.params(params, 30)
	params = s.Bg.params(params, 40)

	out := make([]byte, 0, 16)
	out = append(out, 0x1b, '[')
	for i, p := range params {
		if i > 0 {
			out = append(out, ';')
		}
		out = append(out, p...)
	}
	return append(out, 'm')
}

// Closer assembles the sequence canceling this style. Every non-zero
// style from this subsystem closes with a full reset; styles do not
// nest, so a reset is always the matching closer.
func (s Style) Closer() []byte {
	if s.IsZero() {
		return nil
	}
	return []byte{0x1b, '[', '0', 'm'}
}

// standardColorNames are the condensed names used by the brief SGR
// annotation form. Indices 8-15 are the bright variants.
var standardColorNames = [16]string{
	"blk", "red", "grn", "yel", "blu", "mag", "cyn", "wht",
	"BLK", "RED", "GRN", "YEL", "BLU", "MAG", "CYN", "WHT",
}

// briefColor renders a color in the condensed annotation form:
// a three-letter name, an i-prefixed palette index, or an r-prefixed
// RGB triple.
func briefColor(c Color) string {
	switch c.Mode {
	case ColorStandard:
		return standardColorNames[c.Index&15]
	case ColorIndexed:
		return "i" + strconv.Itoa(int(c.Index))
	case ColorRGB:
		return "r" + strconv.Itoa(int(c.R)) + "," + strconv.Itoa(int(c.G)) + "," + strconv.Itoa(int(c.B))
	}
	return ""
}

// attrAbbrevs maps attribute bits to their condensed two-letter form.
var attrAbbrevs = []struct {
	attr Attr
	name string
}{
	{AttrBold, "bo"},
	{AttrDim, "di"},
	{AttrItalic, "it"},
	{AttrUnderline, "ul"},
	{AttrBlink, "bl"},
	{AttrReverse, "rv"},
	{AttrHidden, "hi"},
	{AttrStrike, "st"},
}

// Brief renders the style in the condensed annotation form used at
// DetailBrief, e.g. "red+bo" or "i208/blu". The zero style renders as
// "0" (reset).
func (s Style) Brief() string {
	if s.IsZero() {
		return "0"
	}
	var b []byte
	if name := briefColor(s.Fg); name != "" {
		b = append(b, name...)
	}
	if name := briefColor(s.Bg); name != "" {
		if len(b) > 0 {
			b = append(b, '/')
		}
		b = append(b, name...)
	}
	for _, aa := range attrAbbrevs {
		if s.HasAttr(aa.attr) {
			if len(b) > 0 {
				b = append(b, '+')
			}
			b = append(b, aa.name...)
		}
	}
	return string(b)
}
