// Package serializer provides wire-format codecs for the storage control
// surface's Command/Result envelopes.
//
// Key Components:
//
//   - Serializer: the interface every codec satisfies.
//   - jsonSerializer: JSON encoding, useful for debugging and for clients
//     outside Go.
//   - gobSerializer: Go's gob encoding, smaller and faster between two Go
//     processes but opaque to everything else.
//
// Thread Safety: both implementations are stateless and safe for
// concurrent use without additional synchronization.
package serializer
