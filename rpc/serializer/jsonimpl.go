package serializer

import "encoding/json"

// NewJSONSerializer creates a new Serializer using JSON encoding.
func NewJSONSerializer() Serializer {
	return jsonSerializer{}
}

type jsonSerializer struct{}

func (jsonSerializer) Serialize(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonSerializer) Deserialize(b []byte, v any) error {
	return json.Unmarshal(b, v)
}
