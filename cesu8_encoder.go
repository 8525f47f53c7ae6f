package streamcodec

// cesu8Encoder encodes UTF-16 code units to CESU-8 bytes. CESU-8 encodes
// each code unit independently, so a supplementary scalar's surrogate pair
// produces two three-byte sequences rather than one four-byte sequence,
// the defining difference from UTF-8. The encoder is stateless: no code
// unit's encoding depends on any other.
type cesu8Encoder struct{}

// NewCESU8Encoder returns a new CESU-8 encoder session.
func NewCESU8Encoder() Encoder {
	return cesu8Encoder{}
}

func cesu8Len(c uint16) int {
	switch {
	case c < 0x80:
		return 1
	case c < 0x800:
		return 2
	default:
		return 3
	}
}

func appendCESU8(dst []byte, c uint16) []byte {
	switch {
	case c < 0x80:
		return append(dst, byte(c))
	case c < 0x800:
		return append(dst, byte(0xC0|c>>6), byte(0x80|c&0x3F))
	default:
		return append(dst, byte(0xE0|c>>12), byte(0x80|(c>>6)&0x3F), byte(0x80|c&0x3F))
	}
}

func (cesu8Encoder) Write(t Text) []byte {
	out := make([]byte, 0, len(t)*3)
	for _, c := range t {
		out = appendCESU8(out, c)
	}
	return out
}

func (cesu8Encoder) End() []byte { return nil }

func (cesu8Encoder) HasState() bool { return false }

func (cesu8Encoder) ByteLength(t Text) int {
	n := 0
	for _, c := range t {
		n += cesu8Len(c)
	}
	return n
}
