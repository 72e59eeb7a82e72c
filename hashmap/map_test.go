package hashmap

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMap() *Map[string, int] {
	seed := NewSeed()
	return New[string, int](StringHasher(seed))
}

func TestEmplaceInsertsOnce(t *testing.T) {
	m := newTestMap()

	var acc ReadAccessor[string, int]
	defer acc.Release()

	require.True(t, m.Emplace(&acc, "a", 1))
	assert.Equal(t, 1, acc.Value())
	assert.Equal(t, 1, m.Size())

	var acc2 ReadAccessor[string, int]
	defer acc2.Release()

	require.False(t, m.Emplace(&acc2, "a", 2))
	assert.Equal(t, 1, acc2.Value(), "second emplace must not overwrite the existing value")
	assert.Equal(t, 1, m.Size())
}

func TestFindMissingReleasesLock(t *testing.T) {
	m := newTestMap()
	var acc ReadAccessor[string, int]

	require.False(t, m.Find(&acc, "missing"))
	assert.True(t, acc.Empty())

	// the lock must have been released on miss, or this write-locking Erase
	// would deadlock.
	require.False(t, m.Erase("missing"))
	require.True(t, m.Insert("missing", 7))
	require.True(t, m.Find(&acc, "missing"))
	assert.Equal(t, 7, acc.Value())
	acc.Release()
}

func TestEraseByKey(t *testing.T) {
	m := newTestMap()
	require.True(t, m.Insert("x", 1))

	assert.True(t, m.Erase("x"))
	assert.False(t, m.Erase("x"))
	assert.Equal(t, 0, m.Size())
	assert.False(t, m.Contains("x"))
}

func TestEraseAccessor(t *testing.T) {
	m := newTestMap()
	var acc WriteAccessor[string, int]

	require.True(t, m.EmplaceWrite(&acc, "x", 1))
	*acc.Value() = 2
	m.EraseAccessor(&acc)

	assert.True(t, acc.Empty())
	assert.False(t, m.Contains("x"))
}

func TestWriteAccessorMutatesInPlace(t *testing.T) {
	m := newTestMap()
	var acc WriteAccessor[string, int]

	require.True(t, m.EmplaceWrite(&acc, "x", 1))
	*acc.Value() += 41
	acc.Release()

	var read ReadAccessor[string, int]
	defer read.Release()
	require.True(t, m.Find(&read, "x"))
	assert.Equal(t, 42, read.Value())
}

func TestRehashPreservesAllEntries(t *testing.T) {
	m := newTestMap()

	const n = 500
	for i := 0; i < n; i++ {
		require.True(t, m.Insert(strconv.Itoa(i), i))
	}
	assert.Equal(t, n, m.Size())

	seen := map[string]bool{}
	m.ForEach(func(k string, v int) bool {
		assert.Equal(t, k, strconv.Itoa(v))
		seen[k] = true
		return true
	})
	assert.Len(t, seen, n)

	for i := 0; i < n; i++ {
		assert.True(t, m.Contains(strconv.Itoa(i)))
	}
}

func TestConcurrentEmplaceOfSameKeyInsertsExactlyOnce(t *testing.T) {
	m := newTestMap()

	const goroutines = 64
	var wg sync.WaitGroup
	inserted := make([]bool, goroutines)

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			var acc ReadAccessor[string, int]
			defer acc.Release()
			inserted[i] = m.Emplace(&acc, "shared", i)
		}(i)
	}
	wg.Wait()

	count := 0
	for _, v := range inserted {
		if v {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, m.Size())
}

func TestTeardownEmptiesMap(t *testing.T) {
	m := newTestMap()
	for i := 0; i < 10; i++ {
		require.True(t, m.Insert(strconv.Itoa(i), i))
	}

	m.Teardown()

	assert.Equal(t, 0, m.Size())
	assert.True(t, m.Empty())
	m.ForEach(func(string, int) bool {
		t.Fatal("no entries should remain after teardown")
		return false
	})
}
