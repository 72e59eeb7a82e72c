package hashmap

// accessorCore holds the bucket lock and node reference shared by both
// accessor flavors. It is never exported directly; ReadAccessor and
// WriteAccessor each embed one and expose the method set appropriate to the
// kind of lock they hold.
type accessorCore[K comparable, V any] struct {
	b     *bucket[K, V]
	n     *node[K, V]
	write bool
	held  bool
}

func (c *accessorCore[K, V]) attach(b *bucket[K, V], n *node[K, V], write bool) {
	c.b, c.n, c.write, c.held = b, n, write, true
}

func (c *accessorCore[K, V]) release() {
	if !c.held {
		return
	}
	if c.write {
		c.b.mu.Unlock()
	} else {
		c.b.mu.RUnlock()
	}
	c.b, c.n, c.held = nil, nil, false
}

// ReadAccessor pins a bucket's read lock and a node found within it until
// Release is called. Value returns a copy; HazardousValue hands back a
// pointer into the live node without any additional synchronization, so
// callers may only use it to read or to mutate through types (e.g. a
// pointer-typed V) that are themselves safe for concurrent mutation.
type ReadAccessor[K comparable, V any] struct {
	core accessorCore[K, V]
}

// Release drops the accessor's lock, if any. Safe to call on a zero-value
// or already-released accessor.
func (a *ReadAccessor[K, V]) Release() { a.core.release() }

// Empty reports whether the accessor currently refers to a node.
func (a *ReadAccessor[K, V]) Empty() bool { return !a.core.held }

// Key returns the key of the node the accessor refers to.
func (a *ReadAccessor[K, V]) Key() K { return a.core.n.key }

// Value returns a copy of the value of the node the accessor refers to.
func (a *ReadAccessor[K, V]) Value() V { return a.core.n.value }

// HazardousValue returns a pointer to the node's value without copying it.
func (a *ReadAccessor[K, V]) HazardousValue() *V { return &a.core.n.value }

// WriteAccessor pins a bucket's write lock and a node found or created
// within it until Release is called. Holding a WriteAccessor guarantees
// exclusive access to the node's value and is required by EraseAccessor.
type WriteAccessor[K comparable, V any] struct {
	core accessorCore[K, V]
}

// Release drops the accessor's lock, if any. Safe to call on a zero-value
// or already-released accessor.
func (a *WriteAccessor[K, V]) Release() { a.core.release() }

// Empty reports whether the accessor currently refers to a node.
func (a *WriteAccessor[K, V]) Empty() bool { return !a.core.held }

// Key returns the key of the node the accessor refers to.
func (a *WriteAccessor[K, V]) Key() K { return a.core.n.key }

// Value returns a pointer to the node's value, valid until Release.
func (a *WriteAccessor[K, V]) Value() *V { return &a.core.n.value }
