package streamcodec

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Adapter bridges this module's UTF-16-code-unit core to Go's native
// UTF-8 string/byte world, as spec.md §9 requires: "Implementations whose
// native string type is UTF-8 must provide a thin adapter that iterates
// code units, preserving lone surrogates." Go's own unicode/utf8 refuses
// to encode a lone surrogate (it substitutes U+FFFD), so the adapter uses
// WTF-8 (the same three-byte-per-surrogate-half shape CESU-8 already uses
// for BMP code units above 0x7FF) as its byte boundary instead of strict
// UTF-8. Every code unit, each surrogate half included, crosses the
// boundary as its own one- to three-byte sequence, so a supplementary
// character appears as two three-byte sequences rather than UTF-8's single
// four-byte one; four-byte sequences in the input are not decoded, and
// each of their bytes becomes ReplacementRune. This lets the adapter satisfy
// golang.org/x/text/transform.Transformer and
// golang.org/x/text/encoding.Encoding directly
// (_examples/other_examples/golang-text__encoding.go is the shape this
// follows), so any codec in this module is usable wherever the x/text
// ecosystem expects an Encoding.
//
// Encoding is bundled from a matched Encoder/Decoder factory pair.
type Encoding struct {
	newEncoder func() Encoder
	newDecoder func() Decoder
}

var _ encoding.Encoding = Encoding{}

// NewEncoding returns an x/text-compatible Encoding wrapping the given
// session factories.
func NewEncoding(newEncoder func() Encoder, newDecoder func() Decoder) Encoding {
	return Encoding{newEncoder: newEncoder, newDecoder: newDecoder}
}

func (e Encoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &EncoderTransform{enc: e.newEncoder()}}
}

func (e Encoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: &DecoderTransform{dec: e.newDecoder()}}
}

// CESU8 and UTF32LE/UTF32BE are ready-made Encodings for the codecs that
// have no per-session configuration, for callers that just want an
// encoding.Encoding.
var (
	CESU8   = NewEncoding(NewCESU8Encoder, func() Decoder { return NewCESU8Decoder(nil) })
	UTF32LE = NewEncoding(
		func() Encoder { return NewUTF32Encoder(LittleEndian) },
		func() Decoder { return NewUTF32Decoder(nil, LittleEndian) },
	)
	UTF32BE = NewEncoding(
		func() Encoder { return NewUTF32Encoder(BigEndian) },
		func() Decoder { return NewUTF32Decoder(nil, BigEndian) },
	)
)

// EncoderTransform adapts an Encoder (Text -> bytes) to
// transform.Transformer (WTF-8 bytes -> bytes), decoding as much of src as
// forms complete WTF-8 sequences on each call.
type EncoderTransform struct {
	enc Encoder
}

// maxFlushBytes is extra dst room reserved at EOF for End()'s output, as
// much as a UTF-32 encoder's pending high surrogate flushes (4 bytes). The
// encoders in this module already count that output in ByteLength.
const maxFlushBytes = 4

func (t *EncoderTransform) Reset() {}

func (t *EncoderTransform) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	text, consumed := wtf8Decode(src, atEOF)
	if consumed < len(src) && !atEOF {
		// Incomplete trailing sequence; ask for more source before we
		// commit to decoding past it.
		err = transform.ErrShortSrc
	}

	need := t.enc.ByteLength(text)
	if atEOF && consumed == len(src) {
		need += maxFlushBytes
	}
	if need > len(dst) {
		return 0, 0, transform.ErrShortDst
	}

	out := t.enc.Write(text)
	if atEOF && consumed == len(src) {
		out = append(out, t.enc.End()...)
	}
	nDst = copy(dst, out)
	return nDst, consumed, err
}

// DecoderTransform adapts a Decoder (bytes -> Text) to
// transform.Transformer (bytes -> WTF-8 bytes).
//
// The underlying Decoder has no way to report "I only consumed the first N
// bytes"; it always buffers any unconsumed remainder internally (that is
// the whole point of its session state). So this Transformer instead
// sizes dst against a worst-case bound *before* calling Write, and returns
// ErrShortDst without touching the decoder at all when dst might be too
// small; once it does call Write, all of src is considered consumed.
type DecoderTransform struct {
	dec Decoder
}

func (t *DecoderTransform) Reset() {}

func (t *DecoderTransform) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	// Each input byte produces at most one UTF-16 code unit, each of
	// which is at most 3 WTF-8 bytes; End() adds at most one more
	// replacement (3 bytes).
	if worstCaseWTF8Len(len(src)) > len(dst) {
		return 0, 0, transform.ErrShortDst
	}

	text := t.dec.Write(src)
	if atEOF {
		text = append(text, t.dec.End()...)
	}
	out := textToWTF8(text)
	nDst = copy(dst, out)
	return nDst, len(src), nil
}

func worstCaseWTF8Len(srcLen int) int {
	return srcLen*3 + 3
}

// textToWTF8 encodes every code unit of t as WTF-8, reusing CESU-8's
// per-code-unit byte shape (which already preserves lone surrogates
// losslessly, since it never special-cases the surrogate range).
func textToWTF8(t Text) []byte {
	out := make([]byte, 0, len(t)*3)
	for _, c := range t {
		out = appendCESU8(out, c)
	}
	return out
}

// wtf8Decode decodes the WTF-8 sequences of src, replacing each malformed
// byte with ReplacementRune and going on, and halting at an incomplete
// trailing sequence. It returns the decoded Text and the number of src
// bytes consumed; with atEOF true src is treated as final, and each byte
// of an incomplete tail becomes ReplacementRune rather than being left
// unconsumed.
func wtf8Decode(src []byte, atEOF bool) (Text, int) {
	var out Text
	n := 0
	for n < len(src) {
		size := wtf8SeqLen(src[n])
		if size == 0 {
			out = append(out, ReplacementRune)
			n++
			continue
		}
		if n+size > len(src) {
			if !atEOF {
				break
			}
			out = append(out, ReplacementRune)
			n++
			continue
		}
		cp, ok := decodeWTF8Seq(src[n : n+size])
		if !ok {
			out = append(out, ReplacementRune)
			n++
			continue
		}
		out = append(out, uint16(cp))
		n += size
	}
	return out, n
}

func wtf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b >= 0xC0 && b < 0xE0:
		return 2
	case b >= 0xE0 && b < 0xF0:
		return 3
	default:
		return 0
	}
}

// decodeWTF8Seq decodes one complete, length-checked WTF-8 sequence
// (1..3 bytes, the CESU-8 byte shape, never 4 bytes, since this boundary
// carries each surrogate half separately). It rejects
// overlong forms the same way cesu8Decoder does, including accepting the
// Modified-UTF-8 C0 80 encoding of NUL.
func decodeWTF8Seq(seq []byte) (int32, bool) {
	for _, b := range seq[1:] {
		if b&0xC0 != 0x80 {
			return 0, false
		}
	}
	switch len(seq) {
	case 1:
		return int32(seq[0]), true
	case 2:
		cp := int32(seq[0]&0x1F)<<6 | int32(seq[1]&0x3F)
		if cp > 0 && cp < 0x80 {
			return 0, false
		}
		return cp, true
	default:
		cp := int32(seq[0]&0x0F)<<12 | int32(seq[1]&0x3F)<<6 | int32(seq[2]&0x3F)
		if cp < 0x800 {
			return 0, false
		}
		return cp, true
	}
}
