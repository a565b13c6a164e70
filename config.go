package byteglass

// ReadMode selects the output layout the stream is rendered into.
type ReadMode uint8

const (
	// ReadText renders the stream as annotated text lines.
	ReadText ReadMode = iota
	// ReadBinary renders the stream as an annotated hex dump.
	ReadBinary
)

// DisplayMode tunes how loudly a byte class is rendered.
type DisplayMode uint8

const (
	// DisplayDefault uses the class default label and style.
	DisplayDefault DisplayMode = iota
	// DisplayFocused highlights the class with reverse video.
	DisplayFocused
	// DisplayIgnored mutes the class: markers render without color,
	// printable bytes render as the mute label.
	DisplayIgnored
)

// DetailLevel controls how much annotation accompanies control and
// escape segments.
type DetailLevel uint8

const (
	// DetailNone renders every classified run as repeated labels only.
	DetailNone DetailLevel = iota
	// DetailMin splits escape sequences into introducer and parameters
	// but keeps control runs as one segment.
	DetailMin
	// DetailBrief adds per-byte mnemonics for control characters and a
	// condensed decoded form for SGR sequences.
	DetailBrief
	// DetailFull is DetailBrief with hex byte values and raw SGR
	// parameters instead of the condensed forms.
	DetailFull
)

const (
	// DefaultChunkSize is the read chunk size used when none is configured.
	DefaultChunkSize = 4096
	// DefaultColumns is the binary-mode column count used when neither an
	// override nor a terminal width is available.
	DefaultColumns = 16
)

// Config carries the display and read-mode axes that parameterize
// template resolution and formatting. It is captured once at session
// construction; the registry derives all per-class rules from it up
// front instead of reading shared state per call.
type Config struct {
	// ReadMode selects text or binary layout.
	ReadMode ReadMode

	// Detail selects the annotation level for control and escape runs.
	Detail DetailLevel

	// Display carries per-class display-mode overrides.
	Display [classCount]DisplayMode

	// DecodeUTF8 decodes multi-byte sequences to their characters even
	// in binary mode (text mode always decodes).
	DecodeUTF8 bool

	// SepLeft and SepRight wrap escape-sequence annotations in text
	// mode. Suppressed in binary mode to keep byte alignment.
	SepLeft, SepRight string

	// Columns forces the binary-mode column count. Zero means compute
	// it from the terminal width.
	Columns int

	// Width is the terminal width used to compute Columns when no
	// override is set. Zero falls back to DefaultColumns.
	Width int

	// LineNumbers prefixes text-mode lines with a line number.
	LineNumbers bool

	// Styles selects how style markers render in the output.
	Styles StyleRendering

	// ChunkSize is the read chunk size. Zero means DefaultChunkSize.
	ChunkSize int

	// MaxBytes stops reading after this many bytes. Zero means no limit.
	MaxBytes int64

	// MaxLines stops reading after this many newlines. Zero means no
	// limit.
	MaxLines int
}

// DefaultConfig returns the configuration used when no options are given:
// text mode, brief detail, live styles, angle-bracket separators.
func DefaultConfig() Config {
	return Config{
		ReadMode: ReadText,
		Detail:   DetailBrief,
		SepLeft:  "<",
		SepRight: ">",
		Styles:   StylesLive,
	}
}
