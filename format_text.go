package byteglass

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// TextFormatter renders detached chain content line by line, with an
// optional line-number prefix. Output lines always end in a newline,
// even when the source's last line did not.
type TextFormatter struct {
	out         io.Writer
	printer     Printer
	lineNumbers bool
	line        int
}

// NewTextFormatter builds the line-oriented formatter.
func NewTextFormatter(out io.Writer, cfg Config) *TextFormatter {
	return &TextFormatter{
		out:         out,
		printer:     Printer{Mode: PrintText, Styles: cfg.Styles},
		lineNumbers: cfg.LineNumbers,
	}
}

// Format emits every complete buffered line. Suspended ends the pass
// until a newline arrives; with final set the unterminated remainder
// drains as a last line.
func (f *TextFormatter) Format(chain *Chain, final bool) error {
	for {
		elems, err := chain.DetachLine(final)
		switch {
		case errors.Is(err, ErrExhausted), errors.Is(err, ErrSuspended):
			return nil
		case err != nil:
			return err
		}
		if ContentLength(elems) == 0 {
			continue
		}
		if err := f.writeLine(elems); err != nil {
			return err
		}
	}
}

// writeLine prints one detached line. Open styles were already closed
// by the detach, so the newline is written after the closers and color
// never bleeds into the next line.
func (f *TextFormatter) writeLine(elems []Element) error {
	f.line++
	var buf bytes.Buffer
	if f.lineNumbers {
		fmt.Fprintf(&buf, "%6d  ", f.line)
	}
	f.printer.Print(elems, &buf)
	buf.WriteByte('\n')
	_, err := f.out.Write(buf.Bytes())
	return err
}
