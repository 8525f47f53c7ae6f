package streamcodec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func asciiLE(s string) []byte {
	out := make([]byte, 0, len(s)*4)
	for _, r := range s {
		out = append(out, byte(r), 0, 0, 0)
	}
	return out
}

func asciiBE(s string) []byte {
	out := make([]byte, 0, len(s)*4)
	for _, r := range s {
		out = append(out, 0, 0, 0, byte(r))
	}
	return out
}

// TestUTF32AutoDetectsLE pins spec.md §8 scenario 6: >=32 bytes of
// LE-encoded ASCII selects utf-32le.
func TestUTF32AutoDetectsLE(t *testing.T) {
	host := DefaultHost{}
	dec := NewUTF32AutoDecoder(host, DecoderOptions{})
	input := asciiLE("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdef") // 32 characters, 128 bytes
	got := dec.Write(input)
	require.Equal(t, textFromASCII("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdef"), got)
}

func TestUTF32AutoDetectsBE(t *testing.T) {
	host := DefaultHost{}
	dec := NewUTF32AutoDecoder(host, DecoderOptions{})
	input := asciiBE("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdef")
	got := dec.Write(input)
	require.Equal(t, textFromASCII("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdef"), got)
}

// TestUTF32AutoAllZeroDefaultsToLE pins scenario 6's tie-break: an
// all-zero stream has no evidence either way (score 0/0) and falls back
// to defaultEncoding, or utf-32le if unset.
func TestUTF32AutoAllZeroDefaultsToLE(t *testing.T) {
	host := DefaultHost{}
	dec := NewUTF32AutoDecoder(host, DecoderOptions{})
	input := make([]byte, 32)
	got := dec.End() // nothing written yet; End runs the heuristic on zero bytes
	require.Empty(t, got)
	_ = input

	dec2 := NewUTF32AutoDecoder(host, DecoderOptions{})
	got2 := dec2.Write(input)
	require.Equal(t, Text{0, 0, 0, 0, 0, 0, 0, 0}, got2, "all-zero LE quads decode to U+0000 each")
}

func TestUTF32AutoAllZeroDefaultEncodingBE(t *testing.T) {
	host := DefaultHost{}
	dec := NewUTF32AutoDecoder(host, DecoderOptions{DefaultEncoding: "utf-32be"})
	input := make([]byte, 32)
	got := dec.Write(input)
	require.Equal(t, Text{0, 0, 0, 0, 0, 0, 0, 0}, got)
	require.False(t, dec.HasState())
}

func TestUTF32AutoBOMOverridesHeuristic(t *testing.T) {
	host := DefaultHost{}
	dec := NewUTF32AutoDecoder(host, DecoderOptions{})
	input := append([]byte{0xFF, 0xFE, 0x00, 0x00}, asciiBE("X")...) // LE BOM, then BE-shaped content
	input = append(input, make([]byte, 32-len(input))...)
	got := dec.Write(input)
	require.Len(t, got, 8)
	require.Equal(t, uint16(0xFEFF), got[0], "the BOM bytes decode as the BOM scalar under the LE it asserted")
	// With LE honored, the BE-shaped "X" group (00 00 00 58) is a huge
	// out-of-range scalar under LE, not the character 'X'.
	require.EqualValues(t, ReplacementRune, got[1])
}

func TestUTF32AutoDecoderBuffersBelowThreshold(t *testing.T) {
	host := DefaultHost{}
	dec := NewUTF32AutoDecoder(host, DecoderOptions{})
	got := dec.Write(asciiLE("short"))
	require.Empty(t, got, "fewer than 32 bytes defers detection")
	require.True(t, dec.HasState())
}

func TestUTF32AutoDecoderEndBelowThresholdStillDetects(t *testing.T) {
	host := DefaultHost{}
	dec := NewUTF32AutoDecoder(host, DecoderOptions{})
	dec.Write(asciiLE("hi"))
	got := dec.End()
	require.Equal(t, textFromASCII("hi"), got)
}

func TestUTF32AutoEncoderDefaultsLEAndBOM(t *testing.T) {
	host := DefaultHost{}
	enc := NewUTF32AutoEncoder(host, EncoderOptions{})
	autoEnc := enc.(*utf32AutoEncoder)
	require.Equal(t, LittleEndian, autoEnc.Endianness())
	require.True(t, autoEnc.AddBOM())
}

func TestUTF32AutoEncoderAddBOMFalse(t *testing.T) {
	host := DefaultHost{}
	enc := NewUTF32AutoEncoder(host, EncoderOptions{AddBOM: false, AddBOMSet: true})
	autoEnc := enc.(*utf32AutoEncoder)
	require.False(t, autoEnc.AddBOM())
}
