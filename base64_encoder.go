package streamcodec

import "encoding/base64"

// base64Encoder is, in this system's vocabulary, an encoder: it consumes
// base64-encoded *text* and produces raw *bytes*. Input must be decoded in
// 4-character quads, so the session buffers a pending prefix of length
// 0..3 between writes, the same fringe-buffering shape as the standard
// library's streaming base64 encoder that
// _examples/other_examples/cockroachdb-cockroach__base64.go adapts for its
// own (reversed-direction) streaming use, here driven by
// base64.Encoding.Decode instead of Encode.
type base64Encoder struct {
	enc    *base64.Encoding
	prefix []uint16
}

// NewBase64Encoder returns a new streaming base64-to-bytes encoder
// session using the standard alphabet.
func NewBase64Encoder() Encoder {
	return &base64Encoder{enc: base64.StdEncoding}
}

func (e *base64Encoder) Write(t Text) []byte {
	combined := append(append([]uint16(nil), e.prefix...), t...)
	quadLen := len(combined) - len(combined)%4
	out := e.decodeQuads(combined[:quadLen])
	e.prefix = append(e.prefix[:0], combined[quadLen:]...)
	return out
}

func (e *base64Encoder) End() []byte {
	out := e.decodeTail(e.prefix)
	e.prefix = e.prefix[:0]
	return out
}

func (e *base64Encoder) HasState() bool { return len(e.prefix) > 0 }

// decodeQuads decodes a run whose length is known to be a multiple of 4.
// There is no error path on decode: at the first character outside the
// base64 alphabet, only the cleanly decodable run before it is returned,
// and the rest of this run is dropped.
func (e *base64Encoder) decodeQuads(units []uint16) []byte {
	if len(units) == 0 {
		return nil
	}
	ascii := textToASCII(units)
	dst := make([]byte, e.enc.DecodedLen(len(ascii)))
	n, err := e.enc.Decode(dst, ascii)
	if err != nil {
		// A non-alphabet character mid-stream: fall back to decoding only
		// the leading valid run, matching a tolerant host decoder rather
		// than aborting the whole session.
		n = decodeLeadingValidRun(e.enc, ascii, dst)
	}
	return dst[:n]
}

// decodeTail handles the final, possibly non-quad-aligned prefix at End().
// A lenient base64 decoder (this module's stand-in for "the host's own
// base64 decoder") accepts a short, unpadded tail rather than erroring.
func (e *base64Encoder) decodeTail(units []uint16) []byte {
	if len(units) == 0 {
		return nil
	}
	ascii := textToASCII(units)
	raw := base64.RawStdEncoding
	dst := make([]byte, raw.DecodedLen(len(ascii)))
	n, err := raw.Decode(dst, ascii)
	if err != nil {
		n = decodeLeadingValidRun(raw, ascii, dst)
	}
	return dst[:n]
}

// decodeLeadingValidRun shrinks ascii until it decodes cleanly, trying
// progressively shorter quad-aligned (or, for the tail case, any-length)
// prefixes. It never panics and always returns a usable (possibly zero)
// byte count.
func decodeLeadingValidRun(enc *base64.Encoding, ascii, dst []byte) int {
	for l := len(ascii) - 1; l > 0; l-- {
		n, err := enc.Decode(dst, ascii[:l])
		if err == nil {
			return n
		}
	}
	return 0
}

// textToASCII narrows a Text of base64 alphabet characters (always < 0x80)
// to bytes. Any stray non-ASCII code unit narrows to its low byte, which
// will simply fail the base64 alphabet check downstream.
func textToASCII(t []uint16) []byte {
	out := make([]byte, len(t))
	for i, c := range t {
		out[i] = byte(c)
	}
	return out
}

// ByteLength returns a fast upper estimate, per spec.md §4.3: count
// non-'=' characters across the accumulated prefix and the current input
// combined and return floor(n*3/4). Since '=' padding is not counted, this
// equals the decoded length for well-formed input; characters the decoder
// skips or rejects only make it an overestimate, never an underestimate.
func (e *base64Encoder) ByteLength(t Text) int {
	prefixChars := countBase64Chars(e.prefix)
	inputChars := countBase64Chars(t)
	return (prefixChars + inputChars) * 3 / 4
}

func countBase64Chars(t []uint16) int {
	n := 0
	for _, c := range t {
		if c != '=' {
			n++
		}
	}
	return n
}
