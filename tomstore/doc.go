// Package tomstore implements the virtual tree-mount storage described in
// the module's design: named mount identifiers that overlay one or more
// (document, internal-path) bindings with priorities, fanned out across
// reads and writes, with per-document lifecycle managed lazily.
//
// # Key Components
//
//   - Storage[K, M]: the entry point. Generic over the key and mapped
//     types every tom node decodes to; a Codec[T] pair tells it how to
//     translate those types to and from the text a document stores.
//   - Mount registry: a hashmap.Map from mount identifier to a lock-free
//     singly-linked list of mount bindings, built in mounts.go.
//   - Document registry: a hashmap.Map from tom identifier to a
//     documentHandle guarding a lazily materialized tomxml.Tree, built in
//     documents.go.
//   - The path resolver (resolver.go) and operation envelope (envelope.go)
//     tie the two registries together: resolve a user path to a mount,
//     snapshot its binding list, and run a caller-supplied body over each
//     binding's document under the document's lifecycle discipline.
//
// # Internal Mechanisms
//
// Every observer and mutator is built on basicOperation, which differs
// only in the closure it hands to the envelope: reads.go accumulates a
// priority-resolved key/mapped aggregate, writes.go counts per-binding
// write contributions or performs insert/remove.
package tomstore
