package segtable

import (
	"sync"
	"testing"
)

func TestGetReturnsStableAddressableSlot(t *testing.T) {
	tbl := New[int](func() int { return -1 })

	p := tbl.Get(5)
	*p = 42

	if got := *tbl.Get(5); got != 42 {
		t.Fatalf("Get(5) = %d, want 42", got)
	}
}

func TestGetInitializesFreshSlots(t *testing.T) {
	tbl := New[int](func() int { return 7 })

	for _, i := range []uint64{0, 1, 2, 3, 9, 1000} {
		if got := *tbl.Get(i); got != 7 {
			t.Fatalf("Get(%d) = %d, want 7", i, got)
		}
	}
}

func TestConcurrentGetOfSameSegmentReturnsSameBacking(t *testing.T) {
	tbl := New[int](func() int { return 0 })

	var wg sync.WaitGroup
	ptrs := make([]*int, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = tbl.Get(100)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(ptrs); i++ {
		if ptrs[i] != ptrs[0] {
			t.Fatalf("Get(100) returned different addresses across goroutines")
		}
	}
}

func TestTeardownDrainsEveryAllocatedBucket(t *testing.T) {
	tbl := New[int](func() int { return 0 })

	indices := []uint64{0, 1, 2, 3, 10, 500}
	for _, i := range indices {
		*tbl.Get(i) = int(i) + 1
	}

	var drained []int
	tbl.Teardown(func(p *int) {
		drained = append(drained, *p)
	})

	if len(drained) == 0 {
		t.Fatal("Teardown drained nothing")
	}

	// After Teardown, every segment slot is nil again: further Get calls
	// re-allocate fresh, newEntry-initialized segments.
	if got := *tbl.Get(0); got != 0 {
		t.Fatalf("Get(0) after Teardown = %d, want fresh 0", got)
	}
}
