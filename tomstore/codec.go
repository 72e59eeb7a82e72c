package tomstore

import "strconv"

// Codec tells a Storage how to turn a key or mapped value of type T into
// the text stored in a tom document, and back. Storage is generic over
// arbitrary key and mapped types; a Codec is how it reconciles that with
// the plain-text node shape the document format requires.
type Codec[T any] struct {
	Encode func(T) string
	Decode func(string) (T, error)
}

// StringCodec is the identity Codec for string-typed keys or mapped
// values.
func StringCodec() Codec[string] {
	return Codec[string]{
		Encode: func(s string) string { return s },
		Decode: func(s string) (string, error) { return s, nil },
	}
}

// IntCodec is a Codec for int-typed keys or mapped values, encoded in
// base 10.
func IntCodec() Codec[int] {
	return Codec[int]{
		Encode: func(v int) string { return strconv.Itoa(v) },
		Decode: func(s string) (int, error) { return strconv.Atoi(s) },
	}
}
