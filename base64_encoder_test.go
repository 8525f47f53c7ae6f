package streamcodec

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textFromASCII(s string) Text {
	out := make(Text, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = uint16(s[i])
	}
	return out
}

func TestBase64EncoderDecodesSingleShot(t *testing.T) {
	raw := []byte("hello, world")
	b64 := base64.StdEncoding.EncodeToString(raw)

	enc := NewBase64Encoder()
	out := enc.Write(textFromASCII(b64))
	out = append(out, enc.End()...)
	require.Equal(t, raw, out)
}

func TestBase64EncoderBuffersNonQuadPrefix(t *testing.T) {
	raw := []byte("Man")
	b64 := base64.StdEncoding.EncodeToString(raw) // "TWFu", exactly 4 chars

	enc := NewBase64Encoder()
	first := enc.Write(textFromASCII(b64[:3]))
	require.Empty(t, first)
	require.True(t, enc.HasState())

	second := enc.Write(textFromASCII(b64[3:]))
	require.Equal(t, raw, second)
	require.False(t, enc.HasState())
}

func TestBase64EncoderLenientTailAtEnd(t *testing.T) {
	raw := []byte("Ma") // encodes to "TWE=" with padding
	full := base64.StdEncoding.EncodeToString(raw)
	unpadded := full[:len(full)-1] // "TWE", no '=' padding

	enc := NewBase64Encoder()
	enc.Write(textFromASCII(unpadded))
	out := enc.End()
	require.Equal(t, raw, out)
}

// TestBase64EncoderChunkInvariance pins spec.md §8's chunk-invariance
// property: decoding arbitrary chunkings of the same valid base64 text
// yields the same bytes as a single-shot decode.
func TestBase64EncoderChunkInvariance(t *testing.T) {
	raw := []byte("the quick brown fox jumps over the lazy dog")
	b64 := textFromASCII(base64.StdEncoding.EncodeToString(raw))

	oneShot := NewBase64Encoder()
	want := concatBytes(oneShot.Write(b64), oneShot.End())
	require.Equal(t, raw, want)

	for n := 1; n <= len(b64); n++ {
		enc := NewBase64Encoder()
		var got []byte
		for _, chunk := range splitChunks(b64, n) {
			got = append(got, enc.Write(chunk)...)
		}
		got = append(got, enc.End()...)
		assert.Equal(t, want, got, "chunked into %d pieces", n)
	}
}

// TestBase64EncoderByteLengthIsUpperBound pins the documented open
// question: ByteLength is a fast estimate, not an exact count, but the
// actual emitted byte count never exceeds it.
func TestBase64EncoderByteLengthIsUpperBound(t *testing.T) {
	raw := []byte("abcdefghijklmnopqrstuvwxyz0123456789")
	b64 := textFromASCII(base64.StdEncoding.EncodeToString(raw))

	enc := NewBase64Encoder()
	estimate := enc.ByteLength(b64)
	out := enc.Write(b64)
	out = append(out, enc.End()...)
	require.LessOrEqual(t, len(out), estimate)
}

// TestBase64EncoderByteLengthWithPendingPrefix exercises ByteLength when
// a prior Write has already left a non-full-quad prefix buffered: the
// estimate must count the prefix and the new input together, not as two
// independently-floored terms, or it can undercount the quad they
// complete together (3 pending chars + 1 new char decodes to 3 bytes,
// but floor(3*3/4) + floor(1*3/4) is only 2).
func TestBase64EncoderByteLengthWithPendingPrefix(t *testing.T) {
	enc := NewBase64Encoder()
	first := enc.Write(textFromASCII("TWF")) // 3 of "TWFu" ("Man"), no full quad yet
	require.Empty(t, first)
	require.True(t, enc.HasState())

	rest := textFromASCII("u")
	estimate := enc.ByteLength(rest)
	out := enc.Write(rest)
	require.Equal(t, []byte("Man"), out)
	require.Equal(t, len(out), estimate)
}

func TestBase64EncoderSkipsInvalidCharactersGracefully(t *testing.T) {
	enc := NewBase64Encoder()
	require.NotPanics(t, func() {
		enc.Write(textFromASCII("!!!!not-valid-base64!!!!"))
		enc.End()
	})
}
