package byteglass

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Formatter drains ready content from a chain into formatted output.
// Each call processes as much as the chain can deliver; with final set
// it force-drains whatever remains.
type Formatter interface {
	Format(chain *Chain, final bool) error
}

// offsetPrefixWidth is the visible width of the "00000000  " row
// prefix, and separatorWidth that of the " | " column divider.
const (
	offsetPrefixWidth = 10
	separatorWidth    = 3
	hexGroup          = 4
)

// BinaryFormatter renders detached chain content as an annotated hex
// dump: offset, grouped hex column, separator, processed column.
type BinaryFormatter struct {
	out     io.Writer
	columns int
	offset  int64
	hex     Printer
	text    Printer
	closed  bool
}

// NewBinaryFormatter builds the hex-dump formatter. The column count
// is the configured override, or derived from the terminal width.
func NewBinaryFormatter(out io.Writer, cfg Config) *BinaryFormatter {
	cols := cfg.Columns
	if cols <= 0 {
		cols = binaryColumns(cfg.Width)
	}
	return &BinaryFormatter{
		out:     out,
		columns: cols,
		hex:     Printer{Mode: PrintHex, Styles: cfg.Styles, Group: hexGroup},
		text:    Printer{Mode: PrintText, Styles: cfg.Styles},
	}
}

// binaryColumns fits whole 4-byte hex groups into the terminal width.
// Each group costs 8 hex digits, a grouping space, and 4 processed
// cells.
func binaryColumns(width int) int {
	if width <= 0 {
		return DefaultColumns
	}
	avail := width - offsetPrefixWidth - separatorWidth
	groups := avail / (hexGroup*2 + 1 + hexGroup)
	if groups < 1 {
		groups = 1
	}
	return groups * hexGroup
}

// Columns returns the resolved row width in bytes.
func (f *BinaryFormatter) Columns() int { return f.columns }

// Format emits one row per detached column-width slice. Suspended ends
// the pass until more input arrives; Exhausted ends it cleanly, with a
// final-offset trailer row once the stream is done.
func (f *BinaryFormatter) Format(chain *Chain, final bool) error {
	for {
		elems, err := chain.DetachBytes(f.columns, final)
		switch {
		case errors.Is(err, ErrExhausted):
			if final && !f.closed {
				f.closed = true
				if _, werr := fmt.Fprintf(f.out, "%08x\n", f.offset); werr != nil {
					return werr
				}
			}
			return nil
		case errors.Is(err, ErrSuspended):
			return nil
		case err != nil:
			return err
		}
		if err := f.writeRow(elems); err != nil {
			return err
		}
	}
}

// writeRow prints one dump row. A short final row pads the hex column
// so the processed column stays aligned.
func (f *BinaryFormatter) writeRow(elems []Element) error {
	n := ContentLength(elems)
	if n == 0 {
		return nil
	}

	var row bytes.Buffer
	fmt.Fprintf(&row, "%08x  ", f.offset)
	f.hex.Print(elems, &row)
	for pad := f.hex.HexWidth(f.columns) - f.hex.HexWidth(n); pad > 0; pad-- {
		row.WriteByte(' ')
	}
	row.WriteString(" | ")
	f.text.Print(elems, &row)
	row.WriteByte('\n')

	f.offset += int64(n)
	_, err := f.out.Write(row.Bytes())
	return err
}
