package streamcodec

// utf32AutoEncoder is a thin delegator: it picks a concrete LE or BE
// encoder up front (default LE) and forwards every call to it. BOM
// prepending itself belongs to the (out of scope) surrounding wrapper;
// this session only records whether the caller wants one, for that
// wrapper to read via AddBOM/Endianness.
type utf32AutoEncoder struct {
	delegate Encoder
	endian   Endianness
	addBOM   bool
}

// NewUTF32AutoEncoder returns a new UTF-32 auto-variant encoder session.
// opts.DefaultEncoding selects "utf-32le" (default) or "utf-32be";
// opts.AddBOM defaults to true unless opts.AddBOMSet is set to record an
// explicit false.
func NewUTF32AutoEncoder(host HostContext, opts EncoderOptions) Encoder {
	endian := LittleEndian
	if opts.DefaultEncoding == "utf-32be" || opts.DefaultEncoding == "ucs4be" {
		endian = BigEndian
	}
	addBOM := true
	if opts.AddBOMSet {
		addBOM = opts.AddBOM
	}
	return &utf32AutoEncoder{
		delegate: NewUTF32Encoder(endian),
		endian:   endian,
		addBOM:   addBOM,
	}
}

// Endianness reports which concrete variant was chosen, for the
// surrounding BOM wrapper to consult.
func (e *utf32AutoEncoder) Endianness() Endianness { return e.endian }

// AddBOM reports whether the caller asked for a BOM to be prepended.
func (e *utf32AutoEncoder) AddBOM() bool { return e.addBOM }

func (e *utf32AutoEncoder) Write(t Text) []byte { return e.delegate.Write(t) }
func (e *utf32AutoEncoder) End() []byte         { return e.delegate.End() }
func (e *utf32AutoEncoder) HasState() bool      { return e.delegate.HasState() }
func (e *utf32AutoEncoder) ByteLength(t Text) int {
	return e.delegate.ByteLength(t)
}

// utf32AutoDecoder buffers input until it has enough to run the
// endianness heuristic, then delegates to a concrete LE or BE decoder
// obtained from host.
type utf32AutoDecoder struct {
	host     HostContext
	opts     DecoderOptions
	buffers  [][]byte
	total    int
	delegate Decoder
}

// minDetectionBytes is the threshold below which Write defers a decision
// and simply buffers (spec.md §4.9): 32 bytes is 8 candidate code-point
// groups, enough for the heuristic to be meaningful.
const minDetectionBytes = 32

// maxDetectionGroups bounds how many 4-byte groups the heuristic scans,
// even if more than that much data has been buffered by the time it runs
// (e.g. because End() is reached with a huge unresolved buffer).
const maxDetectionGroups = 100

// NewUTF32AutoDecoder returns a new UTF-32 auto-variant decoder session.
func NewUTF32AutoDecoder(host HostContext, opts DecoderOptions) Decoder {
	return &utf32AutoDecoder{host: host, opts: opts}
}

func (d *utf32AutoDecoder) Write(data []byte) Text {
	if d.delegate != nil {
		return d.delegate.Write(data)
	}
	buf := append([]byte(nil), data...)
	d.buffers = append(d.buffers, buf)
	d.total += len(buf)
	if d.total < minDetectionBytes {
		return nil
	}
	return d.chooseAndReplay()
}

func (d *utf32AutoDecoder) End() Text {
	if d.delegate != nil {
		return d.delegate.End()
	}
	out := d.chooseAndReplay()
	return append(out, d.delegate.End()...)
}

func (d *utf32AutoDecoder) chooseAndReplay() Text {
	endian := detectEndianness(d.buffers, d.opts.DefaultEncoding)
	dec, err := d.host.GetDecoder(endian.name(), DecoderOptions{})
	if err != nil {
		// Graceful degradation per spec.md §7: a host lookup failure for
		// a name this module itself generated falls back to our own
		// built-in decoder rather than surfacing an error through the
		// fixed Write/End signature (see SPEC_FULL.md §9).
		dec = NewUTF32Decoder(d.host, endian)
	}
	d.delegate = dec

	var out Text
	for _, buf := range d.buffers {
		out = append(out, d.delegate.Write(buf)...)
	}
	d.buffers = nil
	d.total = 0
	return out
}

func (d *utf32AutoDecoder) HasState() bool {
	if d.delegate != nil {
		return d.delegate.HasState()
	}
	return d.total > 0
}

// detectEndianness implements spec.md §4.9's heuristic: a literal BOM
// decides outright; otherwise score each 4-byte group for BE-plausibility
// and LE-plausibility and take the higher score. A tie returns
// defaultEncoding's endianness, or LE when it does not name a BE variant.
func detectEndianness(buffers [][]byte, defaultEncoding string) Endianness {
	first4, ok := firstNBytes(buffers, 4)
	if ok {
		switch {
		case first4[0] == 0xFF && first4[1] == 0xFE && first4[2] == 0x00 && first4[3] == 0x00:
			return LittleEndian
		case first4[0] == 0x00 && first4[1] == 0x00 && first4[2] == 0xFE && first4[3] == 0xFF:
			return BigEndian
		}
	}

	var invalidLE, invalidBE, bmpCharsLE, bmpCharsBE int
	groups := 0
	forEachGroup(buffers, func(b0, b1, b2, b3 byte) bool {
		if groups >= maxDetectionGroups {
			return false
		}
		groups++

		if b0 != 0 || b1 > 0x10 {
			invalidBE++
		}
		if b3 != 0 || b2 > 0x10 {
			invalidLE++
		}
		if b0 == 0 && b1 == 0 && (b2|b3) != 0 {
			bmpCharsBE++
		}
		if (b0|b1) != 0 && b2 == 0 && b3 == 0 {
			bmpCharsLE++
		}
		return true
	})

	scoreLE := bmpCharsLE - invalidLE
	scoreBE := bmpCharsBE - invalidBE
	switch {
	case scoreLE > scoreBE:
		return LittleEndian
	case scoreBE > scoreLE:
		return BigEndian
	default:
		if defaultEncoding == "utf-32be" || defaultEncoding == "ucs4be" {
			return BigEndian
		}
		return LittleEndian
	}
}

// firstNBytes returns the first n bytes across buffers, and whether that
// many bytes were actually available.
func firstNBytes(buffers [][]byte, n int) ([]byte, bool) {
	out := make([]byte, 0, n)
	for _, buf := range buffers {
		for _, b := range buf {
			out = append(out, b)
			if len(out) == n {
				return out, true
			}
		}
	}
	return out, false
}

// forEachGroup walks consecutive 4-byte groups across chunk boundaries,
// calling fn(b0,b1,b2,b3) for each. It stops early if fn returns false. A
// trailing partial group (fewer than 4 bytes left) is ignored, matching
// the heuristic's "first up-to-100 four-byte groups" scope.
func forEachGroup(buffers [][]byte, fn func(b0, b1, b2, b3 byte) bool) {
	var pending [4]byte
	n := 0
	for _, buf := range buffers {
		for _, b := range buf {
			pending[n] = b
			n++
			if n == 4 {
				if !fn(pending[0], pending[1], pending[2], pending[3]) {
					return
				}
				n = 0
			}
		}
	}
}
