package hashmap

import (
	"sync/atomic"

	"github.com/ValentinKolb/tomkv/internal/segtable"
)

// initialBucketCount is the bucket count a fresh Map starts with.
const initialBucketCount = 8

// maxLoadFactor is the size/bucketCount ratio above which the next
// operation to notice will rehash.
const maxLoadFactor = 1.0

// Map is a concurrent hash map keyed by K, mapping to values of type V.
// The zero value is not usable; construct with New.
type Map[K comparable, V any] struct {
	hasher         func(K) uint64
	table          *segtable.Table[bucket[K, V]]
	bucketCount    atomic.Uint64
	size           atomic.Int64
	rehashRequired atomic.Bool
}

// New constructs an empty Map that hashes keys with hasher.
func New[K comparable, V any](hasher func(K) uint64) *Map[K, V] {
	m := &Map[K, V]{hasher: hasher}
	m.table = segtable.New(func() bucket[K, V] { return bucket[K, V]{} })
	m.bucketCount.Store(initialBucketCount)
	return m
}

// Size returns the number of entries currently stored.
func (m *Map[K, V]) Size() int { return int(m.size.Load()) }

// Empty reports whether the map currently holds no entries.
func (m *Map[K, V]) Empty() bool { return m.Size() == 0 }

// lockBucketForHash locks (read or write, per write) the bucket that
// currently owns hash and returns it together with the bucket count used to
// select it. If a concurrent rehash changes the bucket count between
// selecting a bucket and acquiring its lock, and the new modulus maps hash
// to a different bucket, the lock is released and the bucket is
// re-selected under the new count.
func (m *Map[K, V]) lockBucketForHash(hash uint64, write bool) (*bucket[K, V], uint64) {
	bc := m.bucketCount.Load()
	for {
		idx := hash % bc
		b := m.table.Get(idx)
		if write {
			b.mu.Lock()
		} else {
			b.mu.RLock()
		}
		newBc := m.bucketCount.Load()
		if newBc == bc || hash%newBc == idx {
			return b, newBc
		}
		if write {
			b.mu.Unlock()
		} else {
			b.mu.RUnlock()
		}
		bc = newBc
	}
}

// Emplace inserts key/value if key is absent and attaches acc to the node
// either way (existing or newly inserted), holding a read lock on its
// bucket. It reports whether the insert took place. acc's previous binding,
// if any, is released first.
func (m *Map[K, V]) Emplace(acc *ReadAccessor[K, V], key K, value V) bool {
	acc.Release()
	n, b, inserted := m.emplace(false, key, value)
	acc.core.attach(b, n, false)
	return inserted
}

// EmplaceWrite is Emplace, but attaches acc holding the bucket's write lock.
func (m *Map[K, V]) EmplaceWrite(acc *WriteAccessor[K, V], key K, value V) bool {
	acc.Release()
	n, b, inserted := m.emplace(true, key, value)
	acc.core.attach(b, n, true)
	return inserted
}

// Insert is a convenience wrapper over Emplace for callers that don't need
// an accessor.
func (m *Map[K, V]) Insert(key K, value V) bool {
	var acc ReadAccessor[K, V]
	defer acc.Release()
	return m.Emplace(&acc, key, value)
}

func (m *Map[K, V]) emplace(write bool, key K, value V) (*node[K, V], *bucket[K, V], bool) {
	m.rehashIfNecessary()

	hash := m.hasher(key)
	b, bc := m.lockBucketForHash(hash, write)

	if existing := search(b, key); existing != nil {
		return existing, b, false
	}

	candidate := &node[K, V]{key: key, value: value}
	for {
		head := b.head.Load()
		candidate.next.Store(head)
		if b.head.CompareAndSwap(head, candidate) {
			break
		}
		if existing := searchUntil(b, key, head); existing != nil {
			return existing, b, false
		}
	}

	newSize := m.size.Add(1)
	m.markRehashIfNecessary(newSize, bc)
	return candidate, b, true
}

// Find attaches acc to the node stored under key holding a read lock on its
// bucket, and reports whether key was present. acc's previous binding, if
// any, is released first.
func (m *Map[K, V]) Find(acc *ReadAccessor[K, V], key K) bool {
	acc.Release()
	b, n, ok := m.find(false, key)
	if !ok {
		return false
	}
	acc.core.attach(b, n, false)
	return true
}

// FindWrite is Find, but attaches acc holding the bucket's write lock.
func (m *Map[K, V]) FindWrite(acc *WriteAccessor[K, V], key K) bool {
	acc.Release()
	b, n, ok := m.find(true, key)
	if !ok {
		return false
	}
	acc.core.attach(b, n, true)
	return true
}

// Contains reports whether key is present, without pinning any lock.
func (m *Map[K, V]) Contains(key K) bool {
	var acc ReadAccessor[K, V]
	defer acc.Release()
	return m.Find(&acc, key)
}

func (m *Map[K, V]) find(write bool, key K) (*bucket[K, V], *node[K, V], bool) {
	m.rehashIfNecessary()

	hash := m.hasher(key)
	b, _ := m.lockBucketForHash(hash, write)

	n := search(b, key)
	if n == nil {
		if write {
			b.mu.Unlock()
		} else {
			b.mu.RUnlock()
		}
		return nil, nil, false
	}
	return b, n, true
}

// Erase removes key, reporting whether it was present.
func (m *Map[K, V]) Erase(key K) bool {
	m.rehashIfNecessary()

	hash := m.hasher(key)
	b, _ := m.lockBucketForHash(hash, true)
	defer b.mu.Unlock()

	var prev *node[K, V]
	curr := b.head.Load()
	for curr != nil && curr.key != key {
		prev = curr
		curr = curr.next.Load()
	}
	if curr == nil {
		return false
	}
	unlink(b, prev, curr)
	m.size.Add(-1)
	return true
}

// EraseAccessor removes the node acc refers to, using acc's already-held
// write lock, and releases acc. acc must hold a write lock obtained from
// this map (e.g. via EmplaceWrite or FindWrite).
func (m *Map[K, V]) EraseAccessor(acc *WriteAccessor[K, V]) {
	b, target := acc.core.b, acc.core.n

	var prev *node[K, V]
	curr := b.head.Load()
	for curr != target {
		prev = curr
		curr = curr.next.Load()
	}
	unlink(b, prev, curr)
	m.size.Add(-1)
	acc.Release()
}

func unlink[K comparable, V any](b *bucket[K, V], prev, curr *node[K, V]) {
	if prev != nil {
		prev.next.Store(curr.next.Load())
	} else {
		b.head.Store(curr.next.Load())
	}
}

// ForEach visits every entry once, in an unspecified order, calling fn for
// each. It does not take any bucket locks and must not run concurrently
// with mutating operations on the same map. Iteration stops early if fn
// returns false.
func (m *Map[K, V]) ForEach(fn func(key K, value V) bool) {
	bc := m.bucketCount.Load()
	for i := uint64(0); i < bc; i++ {
		b := m.table.Get(i)
		for n := b.head.Load(); n != nil; n = n.next.Load() {
			if !fn(n.key, n.value) {
				return
			}
		}
	}
}

// Teardown releases every node the map holds. It must not run concurrently
// with any other operation.
func (m *Map[K, V]) Teardown() {
	m.table.Teardown(func(b *bucket[K, V]) {
		b.head.Store(nil)
	})
	m.size.Store(0)
}

func (m *Map[K, V]) markRehashIfNecessary(size int64, bucketCount uint64) {
	if float64(size)/float64(bucketCount) > maxLoadFactor {
		m.rehashRequired.Store(true)
	}
}

// rehashIfNecessary performs a deferred, quiescent rehash: it locks every
// bucket in index order, rechecks that a rehash is still needed (another
// goroutine may have raced it), doubles the bucket count, and reinserts
// every node under the new modulus.
func (m *Map[K, V]) rehashIfNecessary() {
	if !m.rehashRequired.Load() {
		return
	}

	bc := m.bucketCount.Load()
	buckets := make([]*bucket[K, V], bc)
	for i := uint64(0); i < bc; i++ {
		b := m.table.Get(i)
		b.mu.Lock()
		buckets[i] = b
	}
	defer func() {
		for _, b := range buckets {
			b.mu.Unlock()
		}
	}()

	if !m.rehashRequired.Load() || m.bucketCount.Load() != bc {
		return
	}

	m.internalRehash(bc, buckets)
	m.rehashRequired.Store(false)
}

func (m *Map[K, V]) internalRehash(bc uint64, buckets []*bucket[K, V]) {
	newBc := bc * 2

	lists := make([]*node[K, V], bc)
	for i, b := range buckets {
		lists[i] = b.head.Load()
		b.head.Store(nil)
	}

	// New buckets (index >= bc) are not yet reachable by any other
	// goroutine, since the published bucket count still excludes them; no
	// lock is needed to populate them here. Only once every node has been
	// moved is the new count published, making the new buckets visible.
	for _, list := range lists {
		for n := list; n != nil; {
			next := n.next.Load()
			nb := m.table.Get(m.hasher(n.key) % newBc)
			for {
				head := nb.head.Load()
				n.next.Store(head)
				if nb.head.CompareAndSwap(head, n) {
					break
				}
			}
			n = next
		}
	}

	m.bucketCount.Store(newBc)
}
