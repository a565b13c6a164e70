package byteglass

import (
	"io"
	"os"
)

// Session wires the reader, parser, chain, and formatter into the
// chunked classify-and-render loop. A Session is single-use: build one
// per input stream.
type Session struct {
	cfg   Config
	out   io.Writer
	trace func(kind Kind, raw []byte)
}

// Option configures a Session during construction.
type Option func(*Session)

// WithConfig replaces the whole configuration at once. Later options
// still apply on top of it.
func WithConfig(cfg Config) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// WithReadMode selects text or binary rendering.
func WithReadMode(m ReadMode) Option {
	return func(s *Session) {
		s.cfg.ReadMode = m
	}
}

// WithDetail sets how much annotation accompanies control and escape
// bytes.
func WithDetail(d DetailLevel) Option {
	return func(s *Session) {
		s.cfg.Detail = d
	}
}

// WithDisplay sets the display mode for one byte class.
func WithDisplay(class Class, m DisplayMode) Option {
	return func(s *Session) {
		if int(class) < len(s.cfg.Display) {
			s.cfg.Display[class] = m
		}
	}
}

// WithDecodeUTF8 decodes multi-byte characters even in binary mode.
func WithDecodeUTF8(on bool) Option {
	return func(s *Session) {
		s.cfg.DecodeUTF8 = on
	}
}

// WithColumns forces the binary-mode row width in bytes.
// Values <= 0 keep the width-derived default.
func WithColumns(n int) Option {
	return func(s *Session) {
		s.cfg.Columns = n
	}
}

// WithWidth sets the terminal width used to derive the binary-mode
// column count when no override is given.
func WithWidth(w int) Option {
	return func(s *Session) {
		s.cfg.Width = w
	}
}

// WithLineNumbers prefixes every text-mode line with its number.
func WithLineNumbers(on bool) Option {
	return func(s *Session) {
		s.cfg.LineNumbers = on
	}
}

// WithSeparators sets the glyphs wrapping escape-sequence annotations
// in text mode.
func WithSeparators(left, right string) Option {
	return func(s *Session) {
		s.cfg.SepLeft = left
		s.cfg.SepRight = right
	}
}

// WithStyleRendering selects live color codes, an escaped diagnostic
// form, or no style output at all.
func WithStyleRendering(r StyleRendering) Option {
	return func(s *Session) {
		s.cfg.Styles = r
	}
}

// WithChunkSize sets the read chunk size.
// Values <= 0 are replaced with the default.
func WithChunkSize(n int) Option {
	return func(s *Session) {
		s.cfg.ChunkSize = n
	}
}

// WithMaxBytes stops reading after n input bytes. Zero means no limit.
func WithMaxBytes(n int64) Option {
	return func(s *Session) {
		s.cfg.MaxBytes = n
	}
}

// WithMaxLines stops reading after n input lines. Zero means no limit.
func WithMaxLines(n int) Option {
	return func(s *Session) {
		s.cfg.MaxLines = n
	}
}

// WithOutput sets the destination for rendered output.
// Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithTrace installs a classification trace hook, called once per
// parser match.
func WithTrace(fn func(kind Kind, raw []byte)) Option {
	return func(s *Session) {
		s.trace = fn
	}
}

// New creates a session with the default configuration and applies the
// given options.
func New(opts ...Option) *Session {
	s := &Session{
		cfg: DefaultConfig(),
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the session's resolved configuration.
func (s *Session) Config() Config { return s.cfg }

// Run reads src to the end, classifying and rendering as it goes. Each
// chunk passes through buffer append, parse, and format in order; the
// final chunk force-drains everything still buffered. Fatal
// classification or split errors abort with partial output rather than
// rendering misaligned bytes.
func (s *Session) Run(src io.Reader) error {
	registry := NewRegistry(s.cfg)
	parser := NewParser(registry)
	if s.trace != nil {
		parser.SetTrace(s.trace)
	}
	chain := NewChain()

	var formatter Formatter
	if s.cfg.ReadMode == ReadBinary {
		formatter = NewBinaryFormatter(s.out, s.cfg)
	} else {
		formatter = NewTextFormatter(s.out, s.cfg)
	}

	var buffer Buffer
	reader := NewReader(src, s.cfg.ChunkSize, s.cfg.MaxBytes, s.cfg.MaxLines)
	for {
		chunk, _, final, err := reader.Next()
		if err != nil {
			return err
		}
		buffer.Append(chunk, final)

		consumed, err := parser.Parse(chain, buffer.Bytes(), buffer.Final())
		if err != nil {
			return err
		}
		if err := buffer.RetainSuffix(buffer.Bytes()[consumed:]); err != nil {
			return err
		}
		if err := formatter.Format(chain, final); err != nil {
			return err
		}
		if final {
			return nil
		}
	}
}
