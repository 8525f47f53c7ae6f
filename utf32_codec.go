package streamcodec

// utf32Encoder assembles UTF-16 surrogate pairs into 32-bit code points and
// writes them with the configured byte order. highSurrogate holds a
// pending high surrogate across Write calls (0 means none pending, which
// is valid because 0 can never be a high surrogate).
type utf32Encoder struct {
	endian        Endianness
	highSurrogate uint16
}

// NewUTF32Encoder returns a new UTF-32 encoder session for the given byte
// order.
func NewUTF32Encoder(endian Endianness) Encoder {
	return &utf32Encoder{endian: endian}
}

func (e *utf32Encoder) Write(t Text) []byte {
	out := make([]byte, 0, len(t)*4)
	for _, c := range t {
		out = e.step(out, c)
	}
	return out
}

func (e *utf32Encoder) step(out []byte, c uint16) []byte {
	if e.highSurrogate != 0 {
		h := e.highSurrogate
		if isHighSurrogate(c) || !isLowSurrogate(c) {
			// Lone high surrogate: preserved unchanged for
			// filesystem-interop reasons (spec.md §4.6), not replaced.
			out = e.emit(out, int32(h))
			e.highSurrogate = 0
			return e.step(out, c)
		}
		out = e.emit(out, combineSurrogates(h, c))
		e.highSurrogate = 0
		return out
	}
	if isHighSurrogate(c) {
		e.highSurrogate = c
		return out
	}
	return e.emit(out, int32(c))
}

func (e *utf32Encoder) emit(out []byte, cp int32) []byte {
	var buf [4]byte
	e.endian.putUint32(buf[:], uint32(cp))
	return append(out, buf[:]...)
}

func (e *utf32Encoder) End() []byte {
	if e.highSurrogate == 0 {
		return nil
	}
	out := e.emit(nil, int32(e.highSurrogate))
	e.highSurrogate = 0
	return out
}

func (e *utf32Encoder) HasState() bool { return e.highSurrogate != 0 }

func (e *utf32Encoder) ByteLength(t Text) int {
	n := 0
	pendingHigh := e.highSurrogate != 0
	for _, c := range t {
		if pendingHigh {
			pendingHigh = false
			if isHighSurrogate(c) || !isLowSurrogate(c) {
				// The stored high surrogate contributes 4 bytes on its
				// own; c is then accounted for by falling through below.
				n += 4
			} else {
				// Paired: the high surrogate's 4 bytes are counted here,
				// for the pair as a whole; c contributes nothing extra.
				n += 4
				continue
			}
		}
		if isHighSurrogate(c) {
			pendingHigh = true
			continue
		}
		n += 4
	}
	if pendingHigh {
		n += 4
	}
	return n
}

// utf32Decoder reads fixed 4-byte code points with the configured byte
// order and emits UTF-16 (a value in the surrogate range comes out as that
// lone code unit). overflow holds 0..3 leftover input
// bytes that did not complete a code point.
type utf32Decoder struct {
	host     HostContext
	endian   Endianness
	overflow []byte
}

// NewUTF32Decoder returns a new UTF-32 decoder session for the given byte
// order. host supplies the replacement scalar; a nil host defaults to
// U+FFFD.
func NewUTF32Decoder(host HostContext, endian Endianness) Decoder {
	return &utf32Decoder{host: host, endian: endian}
}

func (d *utf32Decoder) Write(data []byte) Text {
	out := make(Text, 0, len(data)/4*2+2)
	repl := replacementUnit(d.host)

	if len(d.overflow) > 0 {
		need := 4 - len(d.overflow)
		n := min(need, len(data))
		d.overflow = append(d.overflow, data[:n]...)
		data = data[n:]
		if len(d.overflow) < 4 {
			return out
		}
		out = d.decodeOne(out, d.overflow, repl)
		d.overflow = d.overflow[:0]
	}

	for len(data) >= 4 {
		out = d.decodeOne(out, data[:4], repl)
		data = data[4:]
	}
	if len(data) > 0 {
		d.overflow = append(d.overflow[:0], data...)
	}
	return out
}

func (d *utf32Decoder) decodeOne(out Text, quad []byte, repl uint16) Text {
	cp := int32(d.endian.uint32(quad))
	if cp < 0 || cp > maxCodePoint {
		return append(out, repl)
	}
	return appendScalar(out, cp)
}

func (d *utf32Decoder) End() Text {
	// The trailing partial unit is silently dropped, not replaced. See
	// spec.md §9's open question; this module pins that behavior.
	d.overflow = d.overflow[:0]
	return nil
}

func (d *utf32Decoder) HasState() bool { return len(d.overflow) > 0 }
