// Package streamcodec is a streaming text-encoding codec core. It converts
// between abstract Unicode text and byte sequences for CESU-8, UTF-32
// (little-endian, big-endian, and BOM/heuristic auto-detecting variants),
// and the streaming state of a trivial base64 pass-through.
//
// Every codec is driven through the same session contract: a factory
// produces an Encoder or Decoder, the caller feeds it zero or more chunks
// via Write, and exactly one End call flushes any residual state. Sessions
// are single-use and are not safe for concurrent use; two sessions created
// from independent factory calls may run on different goroutines freely.
package streamcodec

// Text is a text chunk: an ordered sequence of UTF-16 code units. Pairs in
// the surrogate range (0xD800..0xDFFF) combine to form supplementary-plane
// scalars; a code unit standing alone in that range is a lone surrogate and
// must be accepted, not rejected, by every encoder.
type Text []uint16

// Encoder converts Text chunks to bytes. byteLength is an estimate
// sufficient for buffer pre-sizing; it need not be exact.
type Encoder interface {
	// Write consumes t and returns any bytes that could be emitted from it.
	Write(t Text) []byte

	// End flushes any residual state, returning the final bytes (if any),
	// and leaves the session empty. Calling Write after End is undefined.
	End() []byte

	// HasState reports whether the session is holding input that could not
	// yet be interpreted (e.g. a pending high surrogate).
	HasState() bool

	// ByteLength estimates the bytes Write(t) and a following End would emit,
	// counting input already buffered. It is an upper bound for base64 and
	// exact for the other codecs on well-formed input.
	ByteLength(t Text) int
}

// Decoder converts byte chunks to Text. Malformed input never produces an
// error: every indivisible unit of it becomes exactly one replacement code
// unit, except that a UTF-32 decoder drops a trailing partial unit at End.
// A surrogate value in the input (a CESU-8 surrogate half, a UTF-32 value
// in 0xD800..0xDFFF) is emitted as that code unit, so output may contain
// lone surrogates.
type Decoder interface {
	// Write consumes data and returns any Text that could be interpreted
	// from it, given what is already buffered from prior Write calls.
	Write(data []byte) Text

	// End flushes any residual state, returning the final Text (if any),
	// and leaves the session empty. Calling Write after End is undefined.
	End() Text

	// HasState reports whether the session is holding bytes that could not
	// yet be interpreted.
	HasState() bool
}
