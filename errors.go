package byteglass

import "errors"

// Sentinel errors for programmatic error handling.
//
// ErrSuspended and ErrExhausted are control-flow signals that drive the
// chunked read loop; they are expected and recoverable. The remaining
// errors indicate internal inconsistencies and abort the run: emitting
// misaligned output is worse than stopping.
var (
	// ErrSuspended means the chain does not hold enough bytes yet.
	// The caller should retry after the next chunk arrives.
	ErrSuspended = errors.New("suspended: more input required")

	// ErrExhausted means the chain holds no data at all. It ends a
	// formatting pass without error.
	ErrExhausted = errors.New("exhausted: no buffered data")

	// ErrParserDesync means the classification alternation failed to
	// cover some bytes, or the unconsumed remainder was not a suffix
	// of the parsed buffer. Treated as a programming defect.
	ErrParserDesync = errors.New("parser desync")

	// ErrSegmentSplit means a split was attempted on a segment whose
	// display text is not byte-aligned with its raw bytes.
	ErrSegmentSplit = errors.New("segment split")

	// ErrUnknownClass means a pattern matched but no template was
	// registered for its class.
	ErrUnknownClass = errors.New("unknown classification")
)
