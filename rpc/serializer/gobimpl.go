package serializer

import (
	"bytes"
	"encoding/gob"
)

// NewGOBSerializer creates a new Serializer using Go's binary gob format.
func NewGOBSerializer() Serializer {
	return gobSerializer{}
}

type gobSerializer struct{}

func (gobSerializer) Serialize(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gobSerializer) Deserialize(b []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(b)).Decode(v)
}
