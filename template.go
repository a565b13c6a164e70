package byteglass

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Kind identifies one alternative of the parser's classification
// alternation. Every kind resolves to exactly one template.
type Kind uint8

const (
	KindPrintable Kind = iota
	KindUTF8
	KindBinary
	KindCSI
	KindSGR
	KindOSC
	KindCharset
	KindPrivate
	KindEscOther
	KindNul
	KindBareEsc
	KindControl
	KindSpace
	KindTab
	KindNewline
	KindReturn

	kindCount = int(KindReturn) + 1
)

// String returns the kind name used in legends and diagnostics.
func (k Kind) String() string {
	switch k {
	case KindPrintable:
		return "printable"
	case KindUTF8:
		return "utf8"
	case KindBinary:
		return "binary"
	case KindCSI:
		return "csi"
	case KindSGR:
		return "sgr"
	case KindOSC:
		return "osc"
	case KindCharset:
		return "charset"
	case KindPrivate:
		return "private"
	case KindEscOther:
		return "esc"
	case KindNul:
		return "nul"
	case KindBareEsc:
		return "bare-esc"
	case KindControl:
		return "control"
	case KindSpace:
		return "space"
	case KindTab:
		return "tab"
	case KindNewline:
		return "newline"
	case KindReturn:
		return "return"
	}
	return "unknown"
}

// kindClasses maps every pattern alternative to its byte class.
var kindClasses = [kindCount]Class{
	KindPrintable: ClassPrintable,
	KindUTF8:      ClassUTF8,
	KindBinary:    ClassBinary,
	KindCSI:       ClassEscape,
	KindSGR:       ClassEscape,
	KindOSC:       ClassEscape,
	KindCharset:   ClassEscape,
	KindPrivate:   ClassEscape,
	KindEscOther:  ClassEscape,
	KindNul:       ClassControl,
	KindBareEsc:   ClassControl,
	KindControl:   ClassControl,
	KindSpace:     ClassWhitespace,
	KindTab:       ClassWhitespace,
	KindNewline:   ClassWhitespace,
	KindReturn:    ClassWhitespace,
}

// kindLabels are the default marker characters, one display cell per
// raw byte.
var kindLabels = [kindCount]byte{
	KindPrintable: 0, // pass-through
	KindUTF8:      'u',
	KindBinary:    'x',
	KindCSI:       'e',
	KindSGR:       'e',
	KindOSC:       'e',
	KindCharset:   'e',
	KindPrivate:   'e',
	KindEscOther:  'e',
	KindNul:       '0',
	KindBareEsc:   'e',
	KindControl:   '^',
	KindSpace:     '_',
	KindTab:       '>',
	KindNewline:   '$',
	KindReturn:    '<',
}

// classStyles are the default opening styles per byte class.
var classStyles = [classCount]Style{
	ClassControl:    {Fg: Color{Mode: ColorStandard, Index: 1}},
	ClassEscape:     {Fg: Color{Mode: ColorStandard, Index: 6}},
	ClassWhitespace: {Fg: Color{Mode: ColorStandard, Index: 4}, Attrs: AttrDim},
	ClassUTF8:       {Fg: Color{Mode: ColorStandard, Index: 2}},
	ClassBinary:     {Fg: Color{Mode: ColorStandard, Index: 5}},
	ClassPrintable:  {},
}

// ruleKey addresses one entry of the (display-mode, read-mode)
// override table.
type ruleKey struct {
	kind    Kind
	display DisplayMode
	read    ReadMode
}

// labelOverrides replace the default label for specific mode pairs.
var labelOverrides = map[ruleKey]byte{
	// Muted printables render as a dot so ignored text stays aligned.
	{KindPrintable, DisplayIgnored, ReadText}:   '.',
	{KindPrintable, DisplayIgnored, ReadBinary}: '.',
	// Plain spaces stay blank in hex dumps unless focused.
	{KindSpace, DisplayDefault, ReadBinary}: ' ',
	{KindSpace, DisplayIgnored, ReadText}:   ' ',
	{KindSpace, DisplayIgnored, ReadBinary}: ' ',
}

// Template is the per-kind rendering rule: a label, an opening style,
// and the substitution that turns a matched byte run into one or more
// segments. Templates are built once per registry and stay stateless,
// except for the SGR template's memoized brief-form cache held on the
// registry.
type Template struct {
	kind        Kind
	class       Class
	label       byte
	style       Style
	detailStyle Style
	reg         *Registry
	substitute  func(t *Template, raw []byte) []*Segment
}

// Kind returns the pattern alternative this template renders.
func (t *Template) Kind() Kind { return t.kind }

// Class returns the byte class this template renders.
func (t *Template) Class() Class { return t.class }

// Label returns the resolved marker character.
func (t *Template) Label() byte { return t.label }

// Style returns the resolved opening style.
func (t *Template) Style() Style { return t.style }

// Substitute produces the display segments for a matched byte run.
func (t *Template) Substitute(raw []byte) []*Segment {
	return t.substitute(t, raw)
}

// Registry resolves pattern alternatives to templates. All display and
// read-mode configuration is folded in at construction; nothing is read
// from shared state afterwards.
type Registry struct {
	cfg       Config
	templates [kindCount]*Template
	sgrCache  map[string][]byte
}

// NewRegistry builds the template registry for one configuration.
func NewRegistry(cfg Config) *Registry {
	r := &Registry{cfg: cfg, sgrCache: make(map[string][]byte)}
	for k := Kind(0); int(k) < kindCount; k++ {
		r.templates[k] = r.build(k)
	}
	return r
}

// Config returns the configuration the registry was built from.
func (r *Registry) Config() Config { return r.cfg }

// Lookup resolves a pattern alternative to its template.
func (r *Registry) Lookup(k Kind) (*Template, error) {
	if int(k) >= kindCount || r.templates[k] == nil {
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownClass, k)
	}
	return r.templates[k], nil
}

// Templates returns all registered templates in kind order, for the
// legend generator.
func (r *Registry) Templates() []*Template {
	out := make([]*Template, 0, kindCount)
	for _, t := range r.templates {
		out = append(out, t)
	}
	return out
}

func (r *Registry) build(k Kind) *Template {
	class := kindClasses[k]
	t := &Template{
		kind:  k,
		class: class,
		label: r.resolveLabel(k),
		style: r.resolveStyle(class),
		reg:   r,
	}
	// An ignored class stays unstyled end to end, detail included.
	if r.cfg.Display[class] != DisplayIgnored {
		t.detailStyle = t.style.With(AttrDim)
	}

	switch k {
	case KindPrintable:
		t.substitute = printableSub
	case KindUTF8:
		t.substitute = utf8Sub
	case KindSGR:
		t.substitute = sgrSub
	case KindCSI, KindOSC, KindCharset, KindPrivate, KindEscOther:
		t.substitute = escapeSub
	case KindNul, KindBareEsc, KindControl:
		t.substitute = controlSub
	case KindNewline:
		t.substitute = newlineSub
	default:
		t.substitute = defaultSub
	}
	return t
}

// resolveLabel applies the two-level override: the mode-pair table
// first, then the kind default.
func (r *Registry) resolveLabel(k Kind) byte {
	key := ruleKey{kind: k, display: r.cfg.Display[kindClasses[k]], read: r.cfg.ReadMode}
	if label, ok := labelOverrides[key]; ok {
		return label
	}
	return kindLabels[k]
}

// resolveStyle derives the opening style from the class default and
// the class display mode.
func (r *Registry) resolveStyle(class Class) Style {
	switch r.cfg.Display[class] {
	case DisplayFocused:
		return classStyles[class].With(AttrReverse)
	case DisplayIgnored:
		return Style{}
	}
	return classStyles[class]
}

// --- Substitutions ---

// defaultSub renders one segment with the label repeated per byte.
func defaultSub(t *Template, raw []byte) []*Segment {
	return []*Segment{{
		Raw:   raw,
		Text:  bytes.Repeat([]byte{t.label}, len(raw)),
		Style: t.style,
		Class: t.class,
	}}
}

// printableSub passes bytes through as themselves unless the class is
// ignored, in which case the mute label stands in.
func printableSub(t *Template, raw []byte) []*Segment {
	if t.label != 0 {
		return defaultSub(t, raw)
	}
	return []*Segment{{
		Raw:   raw,
		Text:  raw,
		Style: t.style,
		Class: t.class,
	}}
}

// newlineSub renders the line marker and flags the segment so the text
// formatter cuts the line here. Any open styles close before the
// formatter writes the real newline, so color never bleeds across
// lines.
func newlineSub(t *Template, raw []byte) []*Segment {
	segs := defaultSub(t, raw)
	segs[len(segs)-1].Newline = true
	return segs
}

// controlMnemonic returns the caret letter for a control byte
// (0x07 -> 'G', 0x1b -> '[', 0x7f -> '?').
func controlMnemonic(b byte) byte {
	if b == 0x7f {
		return '?'
	}
	return 0x40 ^ b
}

// controlSub renders control runs. At the two lowest detail levels the
// whole run is one labeled segment. At brief/full detail every byte
// gets its own segment plus an adjoining detail segment carrying the
// caret mnemonic (brief) or the hex byte value (full). Detail segments
// are suppressed in binary read-mode: they carry no raw bytes and
// would desynchronize the hex/processed alignment.
func controlSub(t *Template, raw []byte) []*Segment {
	cfg := t.reg.cfg
	if cfg.Detail < DetailBrief || cfg.ReadMode == ReadBinary {
		return defaultSub(t, raw)
	}

	segs := make([]*Segment, 0, len(raw)*2)
	for i := range raw {
		segs = append(segs, &Segment{
			Raw:   raw[i : i+1],
			Text:  []byte{'^'},
			Style: t.style,
			Class: t.class,
		})
		var detail []byte
		if cfg.Detail == DetailFull {
			detail = []byte{hexDigits[raw[i]>>4], hexDigits[raw[i]&15]}
		} else {
			detail = []byte{controlMnemonic(raw[i])}
		}
		segs = append(segs, &Segment{
			Text:  detail,
			Style: t.detailStyle,
			Class: t.class,
		})
	}
	return segs
}

// printableParams maps parameter bytes one-to-one onto display text,
// replacing anything non-printable with a dot. The result is always
// byte-aligned with its raw run.
func printableParams(raw []byte) []byte {
	out := make([]byte, len(raw))
	for i, b := range raw {
		if b >= 0x20 && b < 0x7f {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return out
}

// escapeSub splits an escape sequence into a one-byte introducer
// segment and a trailing parameter-detail segment, wrapped in the
// configured separator glyphs in text mode. At the lowest detail level
// the whole sequence collapses to repeated labels.
func escapeSub(t *Template, raw []byte) []*Segment {
	cfg := t.reg.cfg
	if cfg.Detail == DetailNone || len(raw) < 2 {
		return defaultSub(t, raw)
	}
	return t.escapeSegments(raw, printableParams(raw[1:]), t.style, t.detailStyle)
}

// escapeSegments assembles the introducer/detail pair shared by the
// generic escape templates and the SGR template.
func (t *Template) escapeSegments(raw, params []byte, introStyle, detailStyle Style) []*Segment {
	cfg := t.reg.cfg

	introText := []byte{t.label}
	detailText := params
	if cfg.ReadMode == ReadText {
		introText = append([]byte(cfg.SepLeft), t.label)
		detailText = append(append([]byte{}, params...), cfg.SepRight...)
	}

	return []*Segment{
		{Raw: raw[:1], Text: introText, Style: introStyle, Class: t.class},
		{Raw: raw[1:], Text: detailText, Style: detailStyle, Class: t.class},
	}
}

// sgrSub renders a style-setting (SGR) sequence. The raw parameter
// bytes are decoded into the style the terminal is about to enter, and
// the annotation itself is colored with that style. At brief detail in
// text mode the parameter list renders in its condensed decoded form,
// memoized per distinct parameter string.
func sgrSub(t *Template, raw []byte) []*Segment {
	cfg := t.reg.cfg
	if cfg.Detail == DetailNone || len(raw) < 2 {
		return defaultSub(t, raw)
	}

	entered := decodeSGR(raw)
	introStyle := entered
	detailStyle := entered
	if cfg.Display[t.class] == DisplayIgnored {
		introStyle = Style{}
		detailStyle = Style{}
	}

	params := printableParams(raw[1:])
	if cfg.ReadMode == ReadText && cfg.Detail == DetailBrief {
		params = t.reg.sgrBrief(raw[1:], entered)
	}
	return t.escapeSegments(raw, params, introStyle, detailStyle)
}

// sgrBrief returns the condensed form of one SGR parameter string,
// computing it at most once per distinct parameter sequence. Safe only
// under the pipeline's sequential use.
func (r *Registry) sgrBrief(params []byte, entered Style) []byte {
	key := string(params)
	if brief, ok := r.sgrCache[key]; ok {
		return brief
	}
	brief := []byte("[" + entered.Brief())
	r.sgrCache[key] = brief
	return brief
}

// utf8Sub decodes multi-byte sequences in text mode (or on request in
// binary mode) and shows the decoded character. Binary mode spreads
// the character over per-byte segments, one display cell per raw byte,
// so a hex-row boundary can split between bytes without hitting an
// unsplittable segment. Zero-width characters fall back to the
// repeated label.
func utf8Sub(t *Template, raw []byte) []*Segment {
	cfg := t.reg.cfg
	if cfg.ReadMode != ReadText && !cfg.DecodeUTF8 {
		return defaultSub(t, raw)
	}

	if cfg.ReadMode == ReadText {
		// The decoded character is its own bytes: consistent and
		// splittable at byte offsets.
		return []*Segment{{
			Raw:   raw,
			Text:  raw,
			Style: t.style,
			Class: t.class,
		}}
	}

	r, _ := utf8.DecodeRune(raw)
	w := runeWidth(r)
	if w == 0 {
		return defaultSub(t, raw)
	}

	// The character rides on the first byte; the bytes it covers get
	// empty text, the rest pad with spaces, so the row stays one cell
	// per byte overall.
	segs := make([]*Segment, 0, len(raw))
	segs = append(segs, &Segment{
		Raw:   raw[:1],
		Text:  []byte(string(r)),
		Style: t.style,
		Class: t.class,
	})
	for i := 1; i < len(raw); i++ {
		var text []byte
		if i >= w {
			text = []byte{' '}
		}
		segs = append(segs, &Segment{
			Raw:   raw[i : i+1],
			Text:  text,
			Style: t.style,
			Class: t.class,
		})
	}
	return segs
}
