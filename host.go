package streamcodec

// HostContext is the surrounding framework's collaborator contract. The
// core never constructs one; it is supplied by whatever embeds this module
// (a CLI, an encoding registry, a BOM-stripping wrapper, all out of scope
// here). It supplies the replacement scalar used by decoders and
// sub-codec lookup for the UTF-32 auto variants.
type HostContext interface {
	// ReplacementChar is the single Unicode scalar decoders substitute for
	// malformed input, as a length-1 Text value. Defaults to U+FFFD.
	ReplacementChar() Text

	// GetEncoder looks up an encoder factory by codec name (e.g.
	// "utf-32le") and returns a fresh session.
	GetEncoder(name string, opts EncoderOptions) (Encoder, error)

	// GetDecoder looks up a decoder factory by codec name and returns a
	// fresh session.
	GetDecoder(name string, opts DecoderOptions) (Decoder, error)
}

// EncoderOptions carries the per-session options spec.md §6 names for
// encoder construction. Only the UTF-32 auto encoder consults AddBOM and
// DefaultEncoding; other codecs ignore unrecognized fields.
type EncoderOptions struct {
	// AddBOM controls whether the UTF-32 auto encoder asks the (out of
	// scope) surrounding BOM wrapper to prepend a BOM. Defaults to true;
	// callers that mean "false" must set AddBOMSet too.
	AddBOM    bool
	AddBOMSet bool

	// DefaultEncoding names the endianness the UTF-32 auto encoder
	// instantiates. Empty means "utf-32le".
	DefaultEncoding string
}

// DecoderOptions carries the per-session options spec.md §6 names for
// decoder construction. Only the UTF-32 auto decoder consults
// DefaultEncoding.
type DecoderOptions struct {
	// DefaultEncoding is returned by the endianness heuristic on a score
	// tie. Empty means "utf-32le".
	DefaultEncoding string
}

// ReplacementRune is the default replacement scalar, U+FFFD.
const ReplacementRune = 0xFFFD

// defaultReplacement returns host's configured replacement char, falling
// back to U+FFFD if host is nil or returns an empty value. A nil host is a
// caller-convenience default, not part of the documented contract.
func defaultReplacement(host HostContext) Text {
	if host == nil {
		return Text{ReplacementRune}
	}
	if r := host.ReplacementChar(); len(r) > 0 {
		return r
	}
	return Text{ReplacementRune}
}

// replacementUnit is the single code unit form of defaultReplacement, used
// by every decoder's inner loop. Per spec.md §6 the replacement is "a
// single Unicode scalar", so only its first code unit is used even if a
// misconfigured host supplies a surrogate pair.
func replacementUnit(host HostContext) uint16 {
	return defaultReplacement(host)[0]
}

// DefaultHost is a minimal HostContext sufficient to exercise the UTF-32
// auto codecs' sub-codec lookup in this module's own tests. It is
// deliberately not the general encoding-name registry spec.md §1 excludes:
// it resolves only the codecs this module implements (the UTF-32 family
// with its ucs4 aliases, cesu8, utf8/unicode11utf8, binary, hex, base64);
// any other name is an error.
type DefaultHost struct {
	// Replacement overrides the replacement scalar; the zero value means
	// U+FFFD.
	Replacement Text
}

var _ HostContext = DefaultHost{}

func (h DefaultHost) ReplacementChar() Text {
	if len(h.Replacement) > 0 {
		return h.Replacement
	}
	return Text{ReplacementRune}
}

func (h DefaultHost) GetEncoder(name string, opts EncoderOptions) (Encoder, error) {
	switch name {
	case "utf-32le", "ucs4le":
		return NewUTF32Encoder(LittleEndian), nil
	case "utf-32be", "ucs4be":
		return NewUTF32Encoder(BigEndian), nil
	case "utf-32", "ucs4":
		return NewUTF32AutoEncoder(h, opts), nil
	case "cesu8":
		return NewCESU8Encoder(), nil
	case "utf8", "unicode11utf8":
		return NewUTF8Encoder(), nil
	case "binary":
		return NewBinaryEncoder(), nil
	case "hex":
		return NewHexEncoder(), nil
	case "base64":
		return NewBase64Encoder(), nil
	default:
		return nil, unknownCodecError(name)
	}
}

func (h DefaultHost) GetDecoder(name string, opts DecoderOptions) (Decoder, error) {
	switch name {
	case "utf-32le", "ucs4le":
		return NewUTF32Decoder(h, LittleEndian), nil
	case "utf-32be", "ucs4be":
		return NewUTF32Decoder(h, BigEndian), nil
	case "utf-32", "ucs4":
		return NewUTF32AutoDecoder(h, opts), nil
	case "cesu8":
		return NewCESU8Decoder(h), nil
	case "utf8", "unicode11utf8":
		return NewUTF8Decoder(h), nil
	case "binary":
		return NewBinaryDecoder(), nil
	case "hex":
		return NewHexDecoder(), nil
	case "base64":
		return NewBase64Decoder(), nil
	default:
		return nil, unknownCodecError(name)
	}
}
