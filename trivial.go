package streamcodec

import (
	"encoding/base64"
	"encoding/hex"
	"unicode/utf16"
	"unicode/utf8"
)

// Trivial codecs: stateless adapters over the host's byte/string
// primitives. spec.md §4.2 specifies these only as interface contracts
// "because they contain no non-trivial engineering": each Write below is
// a direct call into a standard library primitive, not a hand-rolled
// state machine, matching the teacher's own utf8.go
// (_examples/tessro-go-charset/charset/utf8.go), which is itself a thin
// wrapper over unicode/utf8.

// utf8Codec implements Encoder for UTF-8; utf8Decoder below wraps it to
// implement Decoder. Decoding
// invalid UTF-8 substitutes one replacement code unit per ill-formed
// byte, matching unicode/utf8.DecodeRune's own RuneError-on-bad-input
// contract.
type utf8Codec struct{ host HostContext }

// NewUTF8Encoder returns a new stateless UTF-8 encoder session.
func NewUTF8Encoder() Encoder { return utf8Codec{} }

// NewUTF8Decoder returns a new stateless UTF-8 decoder session. host
// supplies the replacement scalar; a nil host defaults to U+FFFD.
func NewUTF8Decoder(host HostContext) Decoder { return utf8Decoder{utf8Codec{host: host}} }

func (c utf8Codec) Write(t Text) []byte {
	runes := utf16.Decode(t)
	out := make([]byte, 0, len(runes)*utf8.UTFMax)
	var buf [utf8.UTFMax]byte
	for _, r := range runes {
		n := utf8.EncodeRune(buf[:], r)
		out = append(out, buf[:n]...)
	}
	return out
}

func (c utf8Codec) WriteBytes(data []byte) Text {
	out := make(Text, 0, len(data))
	repl := replacementUnit(c.host)
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			out = append(out, repl)
		} else {
			out = appendScalar(out, int32(r))
		}
		data = data[size:]
	}
	return out
}

func (c utf8Codec) End() []byte    { return nil }
func (c utf8Codec) HasState() bool { return false }
func (c utf8Codec) ByteLength(t Text) int {
	return len(c.Write(t))
}

// utf8Decoder adapts utf8Codec to the Decoder interface (Decoder.Write
// takes bytes, not Text; Go can't let one type implement both Encoder and
// Decoder with the same method name and different signatures).
type utf8Decoder struct{ utf8Codec }

func (d utf8Decoder) Write(data []byte) Text { return d.WriteBytes(data) }
func (d utf8Decoder) End() Text              { return nil }

// binaryCodec treats each byte as one ISO-8859-1 code unit (its low byte
// equals the Unicode scalar of the same value) and each code unit <= 0xFF
// as one byte. Code units above 0xFF narrow to their low byte, mirroring
// the host's binary charset semantics.
type binaryCodec struct{}

// NewBinaryEncoder returns a new stateless binary (ISO-8859-1) encoder.
func NewBinaryEncoder() Encoder { return binaryCodec{} }

// NewBinaryDecoder returns a new stateless binary (ISO-8859-1) decoder.
func NewBinaryDecoder() Decoder { return binaryDecoder{} }

func (binaryCodec) Write(t Text) []byte {
	out := make([]byte, len(t))
	for i, c := range t {
		out[i] = byte(c)
	}
	return out
}

func (binaryCodec) WriteBytes(data []byte) Text {
	out := make(Text, len(data))
	for i, b := range data {
		out[i] = uint16(b)
	}
	return out
}

func (binaryCodec) End() []byte           { return nil }
func (binaryCodec) HasState() bool        { return false }
func (binaryCodec) ByteLength(t Text) int { return len(t) }

type binaryDecoder struct{ binaryCodec }

func (d binaryDecoder) Write(data []byte) Text { return d.WriteBytes(data) }
func (d binaryDecoder) End() Text              { return nil }

// hexDecoder renders bytes as lowercase hex text. Its counterpart
// hexEncoder parses hex text back to bytes.
type hexDecoder struct{}

// NewHexEncoder returns a new stateless hex (text-to-bytes) encoder.
//
// Named an Encoder in this system's vocabulary for symmetry with the
// base64 streaming codec (spec.md §4.3): like base64, hex is "backwards"
// from the usual encoder/decoder direction because the wire format is
// text and the abstract value is bytes.
func NewHexEncoder() Encoder { return hexEncoder{} }

// NewHexDecoder returns a new stateless hex decoder.
func NewHexDecoder() Decoder { return hexDecoder{} }

// hexEncoder parses hex text to bytes. Odd-length or non-hex-digit input
// decodes its longest clean leading run, then stops, rather than
// panicking: the hex encoding has no notion of a replacement character,
// so malformed input is simply truncated.
type hexEncoder struct{}

func (hexEncoder) Write(t Text) []byte {
	ascii := make([]byte, len(t))
	for i, c := range t {
		ascii[i] = byte(c)
	}
	dst := make([]byte, hex.DecodedLen(len(ascii)))
	n, err := hex.Decode(dst, ascii)
	if err != nil {
		for l := len(ascii) - (len(ascii) % 2); l >= 0; l -= 2 {
			if n, err = hex.Decode(dst, ascii[:l]); err == nil {
				break
			}
		}
	}
	return dst[:n]
}

func (hexEncoder) End() []byte    { return nil }
func (hexEncoder) HasState() bool { return false }
func (hexEncoder) ByteLength(t Text) int {
	return len(t) / 2
}

func (hexDecoder) Write(data []byte) Text {
	dst := make([]byte, hex.EncodedLen(len(data)))
	hex.Encode(dst, data)
	out := make(Text, len(dst))
	for i, b := range dst {
		out[i] = uint16(b)
	}
	return out
}

func (hexDecoder) End() Text      { return nil }
func (hexDecoder) HasState() bool { return false }

// base64Decoder is the trivial, stateless half of the base64 family
// (spec.md §2's "base64 decode" row): it base64-encodes raw bytes into
// text. The stateful counterpart, base64Encoder, is defined in
// base64_encoder.go.
type base64Decoder struct{}

// NewBase64Decoder returns a new stateless bytes-to-base64-text decoder,
// using the standard alphabet.
func NewBase64Decoder() Decoder { return base64Decoder{} }

func (base64Decoder) Write(data []byte) Text {
	dst := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
	base64.StdEncoding.Encode(dst, data)
	out := make(Text, len(dst))
	for i, b := range dst {
		out[i] = uint16(b)
	}
	return out
}

func (base64Decoder) End() Text      { return nil }
func (base64Decoder) HasState() bool { return false }
