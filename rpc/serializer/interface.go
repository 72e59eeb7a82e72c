// Package serializer provides the wire encodings the RPC server and
// client exchange command envelopes with.
package serializer

// Serializer turns a value to and from its wire representation.
// Unlike the shard-command framing this package was modeled on, it is
// generalized over any value rather than one fixed message type, since
// the control surface now exchanges both rpc.Command requests and
// rpc.Result responses through the same codec.
type Serializer interface {
	Serialize(v any) ([]byte, error)
	Deserialize(b []byte, v any) error
}
