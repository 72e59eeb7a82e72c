// Package hashmap implements a concurrent, segmented hash map.
//
// The table is split across a fixed array of lazily-allocated segments, each
// a power-of-two-sized block of buckets (see internal/segtable). A bucket
// pairs a sync.RWMutex with an atomically-published singly-linked node list;
// the mutex exists to let a rehash pass exclude every other operation while
// it holds all buckets, not to serialize ordinary list mutation, which goes
// through compare-and-swap on the bucket's head pointer.
//
// # Key Components
//
//   - Map[K, V]: the concurrent map itself. Emplace and Find each come in a
//     read-accessor and a write-accessor form; Erase removes by key, and
//     EraseAccessor removes the node a write accessor holds.
//   - ReadAccessor / WriteAccessor: pin a bucket lock and a node reference
//     until Release is called, mirroring the read/write accessor pattern of
//     the table this package is modeled on.
//   - Rehashing is deferred and quiescent: a single flag is raised once the
//     load factor exceeds 1.0, and the next operation to notice it acquires
//     every bucket lock in index order, doubles the bucket count, and
//     reinserts every node under the new modulus.
//
// # Internal Mechanisms
//
// Lookups and inserts re-derive the target bucket after acquiring its lock
// and retry if a concurrent rehash changed the bucket count out from under
// them; see (*Map).lockBucketForHash. Erase always takes the bucket's write
// lock because unlinking a node requires exclusive access to the previous
// node's next pointer, something a bare CAS on the list head cannot express.
package hashmap
