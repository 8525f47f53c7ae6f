package streamcodec

import "unicode/utf16"

// textFromRunes builds a Text from runes using the standard library's own
// UTF-16 encoder, for scalars that don't need the lone-surrogate
// exception this module cares about.
func textFromRunes(runes ...rune) Text {
	units := utf16.Encode(runes)
	return Text(units)
}

// splitChunks partitions data into n roughly-equal pieces, preserving
// order, for chunk-invariance tests. n <= 0 or n > len(data) is clamped.
func splitChunks[T any](data []T, n int) [][]T {
	if len(data) == 0 {
		return nil
	}
	if n <= 0 {
		n = 1
	}
	if n > len(data) {
		n = len(data)
	}
	out := make([][]T, 0, n)
	base := len(data) / n
	rem := len(data) % n
	i := 0
	for c := 0; c < n; c++ {
		size := base
		if c < rem {
			size++
		}
		out = append(out, data[i:i+size])
		i += size
	}
	return out
}

func concatBytes(chunks ...[]byte) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

func concatText(chunks ...Text) Text {
	var out Text
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}
