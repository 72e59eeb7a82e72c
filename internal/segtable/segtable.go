// Package segtable implements the lock-free segmented bucket table used by
// the hashmap package: a fixed array of segment pointers, each segment a
// power-of-two-sized contiguous block of buckets, allocated lazily and
// published with a single CAS.
package segtable

import (
	"math/bits"
	"sync/atomic"
)

// tableSize is the number of segment slots, one per bit of a 64-bit index
// (8*sizeof(size_t) in the source design).
const tableSize = 64

// segment is a contiguous, fixed-size block of buckets.
type segment[B any] []B

// Table is a segmented array of buckets indexed by a global bucket index.
// Segment 0 holds indices {0,1}; segment s>=1 holds 2^s buckets starting at
// index 2^s. Segments are allocated on first access and never freed or
// moved once published.
type Table[B any] struct {
	segments [tableSize]atomic.Pointer[segment[B]]
	newEntry func() B
}

// New creates an empty Table. newEntry constructs a fresh, empty bucket; it
// is invoked once per slot whenever a segment is allocated.
func New[B any](newEntry func() B) *Table[B] {
	return &Table[B]{newEntry: newEntry}
}

// segmentIndex returns floor(log2(i|1)).
func segmentIndex(i uint64) uint64 {
	return uint64(bits.Len64(i|1) - 1)
}

// firstIndexInSegment returns the global index of the first bucket stored
// in the segment with the given index.
func firstIndexInSegment(segIdx uint64) uint64 {
	return (uint64(1) << segIdx) &^ 1
}

// sizeOfSegment returns the number of buckets stored in the segment with
// the given index.
func sizeOfSegment(segIdx uint64) uint64 {
	if segIdx == 0 {
		return 2
	}
	return uint64(1) << segIdx
}

// Get returns a pointer to the bucket at the given global index, lazily
// allocating its segment if necessary.
func (t *Table[B]) Get(i uint64) *B {
	segIdx := segmentIndex(i)
	seg := t.ensureSegment(segIdx)
	offset := i - firstIndexInSegment(segIdx)
	return &(*seg)[offset]
}

// ensureSegment returns the segment at segIdx, allocating and publishing it
// via CAS if it does not exist yet. A loser of the CAS race simply
// discards its candidate segment; Go's GC reclaims it.
func (t *Table[B]) ensureSegment(segIdx uint64) *segment[B] {
	slot := &t.segments[segIdx]
	if existing := slot.Load(); existing != nil {
		return existing
	}

	candidate := make(segment[B], sizeOfSegment(segIdx))
	for i := range candidate {
		candidate[i] = t.newEntry()
	}

	if slot.CompareAndSwap(nil, &candidate) {
		return &candidate
	}
	return slot.Load()
}

// Teardown walks every allocated segment and invokes drain on each bucket
// it contains, in index order. It must not be called concurrently with any
// other operation on the table.
func (t *Table[B]) Teardown(drain func(*B)) {
	for segIdx := uint64(0); segIdx < tableSize; segIdx++ {
		seg := t.segments[segIdx].Load()
		if seg == nil {
			continue
		}
		for i := range *seg {
			drain(&(*seg)[i])
		}
		t.segments[segIdx].Store(nil)
	}
}
