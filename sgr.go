package byteglass

import (
	"bytes"
	"image/color"

	"github.com/danielgatis/go-ansicode"
)

// Ensure attrSink implements ansicode.Handler
var _ ansicode.Handler = (*attrSink)(nil)

// decodeSGR runs a raw SGR sequence (ESC '[' params 'm') through the
// ANSI decoder and folds the decoded character attributes into the
// Style the terminal would be left in. The decoder is the same engine
// a terminal emulator uses, so parameter edge cases (empty params,
// colon sub-parameters, extended color forms) match real terminal
// behavior instead of a hand-rolled reading of ECMA-48.
//
// Parameters are fed one sequence at a time: the decoder treats the
// parameter after an underline attribute as its style sub-parameter
// and swallows it, so "4;32" would lose the color if decoded whole.
func decodeSGR(raw []byte) Style {
	var sink attrSink
	dec := ansicode.NewDecoder(&sink)
	for _, params := range splitSGR(raw) {
		dec.Write([]byte("\x1b["))
		dec.Write(params)
		dec.Write([]byte{'m'})
	}

	var st Style
	for _, attr := range sink.attrs {
		st = applyCharAttribute(st, attr)
	}
	return st
}

// splitSGR cuts the parameter list of an SGR sequence into
// independently decodable pieces. Colon sub-parameters stay attached
// to their parameter, and the extended color introducers 38/48/58
// keep their payload (5;n or 2;r;g;b) together.
func splitSGR(raw []byte) [][]byte {
	if len(raw) < 3 {
		return nil
	}
	parts := bytes.Split(raw[2:len(raw)-1], []byte{';'})
	out := make([][]byte, 0, len(parts))
	for i := 0; i < len(parts); i++ {
		p := parts[i]
		if bytes.IndexByte(p, ':') >= 0 {
			out = append(out, p)
			continue
		}
		switch string(p) {
		case "38", "48", "58":
			j := i + 1
			if j < len(parts) {
				switch string(parts[j]) {
				case "5":
					j++
				case "2":
					j += 3
				}
			}
			if j >= len(parts) {
				j = len(parts) - 1
			}
			out = append(out, bytes.Join(parts[i:j+1], []byte{';'}))
			i = j
		default:
			out = append(out, p)
		}
	}
	return out
}

// applyCharAttribute folds one decoded SGR attribute into a style.
func applyCharAttribute(st Style, attr ansicode.TerminalCharAttribute) Style {
	switch attr.Attr {
	case ansicode.CharAttributeReset:
		return Style{}

	case ansicode.CharAttributeBold:
		st.Attrs |= AttrBold
	case ansicode.CharAttributeDim:
		st.Attrs |= AttrDim
	case ansicode.CharAttributeItalic:
		st.Attrs |= AttrItalic
	case ansicode.CharAttributeUnderline,
		ansicode.CharAttributeDoubleUnderline,
		ansicode.CharAttributeCurlyUnderline,
		ansicode.CharAttributeDottedUnderline,
		ansicode.CharAttributeDashedUnderline:
		st.Attrs |= AttrUnderline
	case ansicode.CharAttributeBlinkSlow, ansicode.CharAttributeBlinkFast:
		st.Attrs |= AttrBlink
	case ansicode.CharAttributeReverse:
		st.Attrs |= AttrReverse
	case ansicode.CharAttributeHidden:
		st.Attrs |= AttrHidden
	case ansicode.CharAttributeStrike:
		st.Attrs |= AttrStrike

	case ansicode.CharAttributeCancelBold:
		st.Attrs &^= AttrBold
	case ansicode.CharAttributeCancelBoldDim:
		st.Attrs &^= AttrBold | AttrDim
	case ansicode.CharAttributeCancelItalic:
		st.Attrs &^= AttrItalic
	case ansicode.CharAttributeCancelUnderline:
		st.Attrs &^= AttrUnderline
	case ansicode.CharAttributeCancelBlink:
		st.Attrs &^= AttrBlink
	case ansicode.CharAttributeCancelReverse:
		st.Attrs &^= AttrReverse
	case ansicode.CharAttributeCancelHidden:
		st.Attrs &^= AttrHidden
	case ansicode.CharAttributeCancelStrike:
		st.Attrs &^= AttrStrike

	case ansicode.CharAttributeForeground:
		st.Fg = attrColor(attr)
	case ansicode.CharAttributeBackground:
		st.Bg = attrColor(attr)
	}
	return st
}

// attrColor extracts the color carried by a decoded attribute.
// Named colors above the 16 standard entries (default foreground,
// default background, cursor) map back to the terminal default.
func attrColor(attr ansicode.TerminalCharAttribute) Color {
	if attr.RGBColor != nil {
		return Color{Mode: ColorRGB, R: attr.RGBColor.R, G: attr.RGBColor.G, B: attr.RGBColor.B}
	}
	if attr.IndexedColor != nil {
		return Color{Mode: ColorIndexed, Index: uint8(attr.IndexedColor.Index)}
	}
	if attr.NamedColor != nil {
		if name := int(*attr.NamedColor); name < 16 {
			return Color{Mode: ColorStandard, Index: uint8(name)}
		}
	}
	return Color{}
}

// attrSink is a capture-only ANSI handler: it records SGR character
// attributes and discards every other terminal action. The decoder
// demands the full handler surface, so the bulk of this type is no-ops.
type attrSink struct {
	attrs []ansicode.TerminalCharAttribute
}

// SetTerminalCharAttribute records one decoded SGR attribute.
func (s *attrSink) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	s.attrs = append(s.attrs, attr)
}

func (s *attrSink) Input(r rune)    {}
func (s *attrSink) Bell()           {}
func (s *attrSink) Backspace()      {}
func (s *attrSink) CarriageReturn() {}
func (s *attrSink) LineFeed()       {}
func (s *attrSink) Tab(n int)       {}
func (s *attrSink) Substitute()     {}

func (s *attrSink) ClearLine(mode ansicode.LineClearMode)        {}
func (s *attrSink) ClearScreen(mode ansicode.ClearMode)          {}
func (s *attrSink) ClearTabs(mode ansicode.TabulationClearMode)  {}
func (s *attrSink) Goto(row, col int)                            {}
func (s *attrSink) GotoLine(row int)                             {}
func (s *attrSink) GotoCol(col int)                              {}
func (s *attrSink) MoveUp(n int)                                 {}
func (s *attrSink) MoveDown(n int)                               {}
func (s *attrSink) MoveForward(n int)                            {}
func (s *attrSink) MoveBackward(n int)                           {}
func (s *attrSink) MoveUpCr(n int)                               {}
func (s *attrSink) MoveDownCr(n int)                             {}
func (s *attrSink) MoveForwardTabs(n int)                        {}
func (s *attrSink) MoveBackwardTabs(n int)                       {}
func (s *attrSink) InsertBlank(n int)                            {}
func (s *attrSink) InsertBlankLines(n int)                       {}
func (s *attrSink) DeleteChars(n int)                            {}
func (s *attrSink) DeleteLines(n int)                            {}
func (s *attrSink) EraseChars(n int)                             {}
func (s *attrSink) ScrollUp(n int)                               {}
func (s *attrSink) ScrollDown(n int)                             {}
func (s *attrSink) SetScrollingRegion(top, bottom int)           {}
func (s *attrSink) SetMode(mode ansicode.TerminalMode)           {}
func (s *attrSink) UnsetMode(mode ansicode.TerminalMode)         {}
func (s *attrSink) SetTitle(title string)                        {}
func (s *attrSink) SetCursorStyle(style ansicode.CursorStyle)    {}
func (s *attrSink) SaveCursorPosition()                          {}
func (s *attrSink) RestoreCursorPosition()                       {}
func (s *attrSink) ReverseIndex()                                {}
func (s *attrSink) ResetState()                                  {}
func (s *attrSink) Decaln()                                      {}
func (s *attrSink) DeviceStatus(n int)                           {}
func (s *attrSink) IdentifyTerminal(b byte)                      {}
func (s *attrSink) SetActiveCharset(n int)                       {}
func (s *attrSink) SetKeypadApplicationMode()                    {}
func (s *attrSink) UnsetKeypadApplicationMode()                  {}
func (s *attrSink) SetColor(index int, c color.Color)            {}
func (s *attrSink) ResetColor(i int)                             {}
func (s *attrSink) ClipboardLoad(clipboard byte, term string)    {}
func (s *attrSink) ClipboardStore(clipboard byte, data []byte)   {}
func (s *attrSink) SetHyperlink(hyperlink *ansicode.Hyperlink)   {}
func (s *attrSink) PushTitle()                                   {}
func (s *attrSink) PopTitle()                                    {}
func (s *attrSink) TextAreaSizeChars()                           {}
func (s *attrSink) TextAreaSizePixels()                          {}
func (s *attrSink) HorizontalTabSet()                            {}
func (s *attrSink) PopKeyboardMode(n int)                        {}
func (s *attrSink) ReportKeyboardMode()                          {}
func (s *attrSink) ReportModifyOtherKeys()                       {}
func (s *attrSink) ApplicationCommandReceived(data []byte)       {}
func (s *attrSink) PrivacyMessageReceived(data []byte)           {}
func (s *attrSink) StartOfStringReceived(data []byte)            {}

func (s *attrSink) SetDynamicColor(prefix string, index int, terminator string) {}

func (s *attrSink) ConfigureCharset(index ansicode.CharsetIndex, charset ansicode.Charset) {}

func (s *attrSink) SetKeyboardMode(mode ansicode.KeyboardMode, behavior ansicode.KeyboardModeBehavior) {
}

func (s *attrSink) PushKeyboardMode(mode ansicode.KeyboardMode) {}

func (s *attrSink) SetModifyOtherKeys(modify ansicode.ModifyOtherKeys) {}
