package byteglass

import (
	"bytes"
	"fmt"
	"io"
)

// Buffer accumulates raw bytes between classification passes. The
// parser consumes from the front; whatever it could not classify yet
// is retained as the suffix for the next pass.
type Buffer struct {
	data  []byte
	final bool
}

// Append adds a chunk to the buffer. Once a final chunk arrives the
// buffer stays final.
func (b *Buffer) Append(p []byte, final bool) {
	b.data = append(b.data, p...)
	b.final = b.final || final
}

// Bytes returns the retained contents. The slice is only valid until
// the next Append or RetainSuffix.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of retained bytes.
func (b *Buffer) Len() int { return len(b.data) }

// Final reports whether no more input follows the retained bytes.
func (b *Buffer) Final() bool { return b.final }

// RetainSuffix rebases the buffer onto remainder. The argument must be
// the actual tail of the current contents; anything else means the
// classifier and the buffer disagree about what was consumed.
//
// The tail moves to a fresh backing array: segments produced from the
// previous contents alias the old array, which must never be written
// again while they sit in the chain.
func (b *Buffer) RetainSuffix(remainder []byte) error {
	if len(remainder) > len(b.data) {
		return fmt.Errorf("%w: remainder longer than buffer (%d > %d)", ErrParserDesync, len(remainder), len(b.data))
	}
	tail := b.data[len(b.data)-len(remainder):]
	if !bytes.Equal(tail, remainder) {
		return fmt.Errorf("%w: retained remainder is not a suffix of the buffer", ErrParserDesync)
	}
	b.data = append([]byte(nil), tail...)
	return nil
}

// Reader delivers input in chunks with a running offset and an
// end-of-stream flag, honoring optional byte and line limits.
type Reader struct {
	src      io.Reader
	buf      []byte
	offset   int64
	maxBytes int64
	maxLines int
	lines    int
	done     bool
}

// NewReader wraps src. A non-positive chunk size falls back to the
// default; maxBytes and maxLines of zero mean unlimited.
func NewReader(src io.Reader, chunkSize int, maxBytes int64, maxLines int) *Reader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Reader{
		src:      src,
		buf:      make([]byte, chunkSize),
		maxBytes: maxBytes,
		maxLines: maxLines,
	}
}

// Offset returns the stream offset of the next chunk.
func (r *Reader) Offset() int64 { return r.offset }

// Next returns the next chunk, its starting offset, and whether it is
// the last one. The chunk aliases the reader's internal buffer and
// must be consumed before the following call.
func (r *Reader) Next() (chunk []byte, offset int64, final bool, err error) {
	if r.done {
		return nil, r.offset, true, nil
	}
	for {
		n, rerr := r.src.Read(r.buf)
		if n == 0 && rerr == nil {
			continue
		}
		chunk = r.buf[:n]
		offset = r.offset

		if rerr == io.EOF {
			r.done = true
		} else if rerr != nil {
			return nil, offset, false, rerr
		}
		chunk = r.clamp(chunk)
		r.offset += int64(len(chunk))
		return chunk, offset, r.done, nil
	}
}

// clamp truncates a chunk at the configured byte or line limit and
// marks the stream done when a limit is hit.
func (r *Reader) clamp(chunk []byte) []byte {
	if r.maxBytes > 0 && r.offset+int64(len(chunk)) >= r.maxBytes {
		chunk = chunk[:int(r.maxBytes-r.offset)]
		r.done = true
	}
	if r.maxLines > 0 {
		for i, b := range chunk {
			if b != '\n' {
				continue
			}
			r.lines++
			if r.lines >= r.maxLines {
				r.done = true
				return chunk[:i+1]
			}
		}
	}
	return chunk
}
