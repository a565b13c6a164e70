// Package byteglass renders a byte stream back to a terminal with
// every non-printable element replaced by a colored, labeled marker.
//
// Control characters, ANSI escape sequences, whitespace, multi-byte
// UTF-8 characters, and non-text binary runs each get their own marker
// and color, either inline in a text view or as an annotated hex dump.
// It is an inspection tool for terminal output, log files, and binary
// captures: the input is classified and displayed, never interpreted
// or executed.
//
// # Quick Start
//
// Create a session and run it over any reader:
//
//	s := byteglass.New()
//	if err := s.Run(os.Stdin); err != nil {
//	    log.Fatal(err)
//	}
//
// By default this reads in text mode: each complete line is printed
// with escapes, control bytes, and whitespace annotated inline.
//
// # Architecture
//
// The package is an incremental classify-and-render pipeline:
//
//   - [Parser]: tokenizes the accumulating buffer into typed byte runs
//     via an ordered, total pattern alternation
//   - [Template] / [Registry]: turns each matched run into one or more
//     display [Segment] values according to its class and the
//     display/read-mode configuration
//   - [Chain]: buffers styled segments and zero-length style markers,
//     with byte-exact, split-aware detach operations
//   - [Printer]: a pure segment-to-text visitor (processed text, raw
//     hex, diagnostic variants)
//   - [BinaryFormatter] / [TextFormatter]: drive the detach cycle into
//     hex-dump rows or output lines
//
// Input chunking never affects output: sequences truncated by a chunk
// boundary stay buffered and re-match when the rest arrives, and every
// detached slice is re-bracketed with style markers so it renders
// correctly on its own.
//
// # Modes
//
// Two read modes select the formatter. Text mode annotates inline and
// emits whole lines. Binary mode emits an offset-prefixed hex dump
// with a processed column where every display cell lines up with one
// raw byte:
//
//	s := byteglass.New(
//	    byteglass.WithReadMode(byteglass.ReadBinary),
//	    byteglass.WithColumns(16),
//	)
//
// Per-class display modes focus or mute whole byte classes:
//
//	byteglass.WithDisplay(byteglass.ClassEscape, byteglass.DisplayFocused)
//	byteglass.WithDisplay(byteglass.ClassPrintable, byteglass.DisplayIgnored)
//
// The detail level controls annotation volume, from bare markers
// ([DetailNone]) through caret mnemonics ([DetailBrief]) to hex byte
// values ([DetailFull]).
//
// # Styles
//
// Style-setting (SGR) sequences are decoded so their annotation is
// printed in the style the terminal is about to enter. Output styling
// itself can be live codes, an escaped diagnostic form, or off:
//
//	byteglass.WithStyleRendering(byteglass.StylesEscaped)
//
// # Legend
//
// [Legend] prints one line per rendering rule under a given
// configuration, showing each marker in its resolved style.
package byteglass
