package tomstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, name, xmlBody string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(xmlBody), 0o644))
}

func newIntStorage(t *testing.T) *Storage[int, int] {
	t.Helper()
	s := New[int, int](t.TempDir(), IntCodec(), IntCodec())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func storageDir[K comparable, M any](s *Storage[K, M]) string { return s.dir }

const docWithACD = `<tom><root><a><c><d><key>4</key><mapped>400</mapped></d></c></a></root></tom>`

func TestSingleMountRead(t *testing.T) {
	s := newIntStorage(t)
	writeDoc(t, storageDir(s), "tom1.xml", docWithACD)

	require.NoError(t, s.Mount("mnt", "tom1.xml", "a/c"))

	got, err := s.Value("mnt/d")
	require.NoError(t, err)
	assert.Equal(t, []KV[int, int]{{Key: 4, Mapped: 400}}, got)
}

func TestModifyFanOut(t *testing.T) {
	s := newIntStorage(t)
	writeDoc(t, storageDir(s), "tom1.xml", docWithACD)
	writeDoc(t, storageDir(s), "tom2.xml", docWithACD)

	require.NoError(t, s.MountWithPriority("mnt", "tom1.xml", "a/c", 0))
	require.NoError(t, s.MountWithPriority("mnt", "tom2.xml", "a/c", 0))

	n, err := s.SetValue("mnt/d", 22, 2200)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := s.Value("mnt/d")
	require.NoError(t, err)
	assert.ElementsMatch(t, []KV[int, int]{{Key: 22, Mapped: 2200}, {Key: 22, Mapped: 2200}}, got)
}

func TestPriorityResolution(t *testing.T) {
	s := newIntStorage(t)
	doc := func(mapped int) string {
		return fmt.Sprintf(`<tom><root><a><c><d><key>4</key><mapped>%d</mapped></d></c></a></root></tom>`, mapped)
	}
	writeDoc(t, storageDir(s), "t0.xml", doc(42))
	writeDoc(t, storageDir(s), "t1.xml", doc(4242))
	writeDoc(t, storageDir(s), "t2.xml", doc(4242))

	require.NoError(t, s.MountWithPriority("mnt", "t0.xml", "a/c", 1))
	require.NoError(t, s.MountWithPriority("mnt", "t1.xml", "a/c", 2))
	require.NoError(t, s.MountWithPriority("mnt", "t2.xml", "a/c", 0))

	got, err := s.Value("mnt/d")
	require.NoError(t, err)
	assert.Equal(t, []KV[int, int]{{Key: 4, Mapped: 4242}}, got)
}

func TestLifetimeExpiry(t *testing.T) {
	s := newIntStorage(t)
	writeDoc(t, storageDir(s), "tom1.xml", `<tom><root></root></tom>`)
	require.NoError(t, s.Mount("mnt", "tom1.xml", ""))

	ok, err := s.InsertWithLifetime("mnt/qq", 22, 2200, time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Value("mnt/qq")
	require.NoError(t, err)
	assert.Equal(t, []KV[int, int]{{Key: 22, Mapped: 2200}}, got)

	// date_created and lifetime are whole seconds and expiry is strict, so a
	// 1s lifetime is only guaranteed to have lapsed two seconds later.
	time.Sleep(2100 * time.Millisecond)

	got, err = s.Value("mnt/qq")
	require.NoError(t, err)
	assert.Empty(t, got)

	ok, err = s.Insert("mnt/qq", 48, 4800)
	require.NoError(t, err)
	assert.True(t, ok, "insert must succeed against an outdated node")
}

func TestUnmountedPath(t *testing.T) {
	s := newIntStorage(t)
	_, err := s.Key("a/b/c")
	assert.ErrorIs(t, err, ErrUnmountedPath)
}

func TestUnmountReturnsWhetherPresent(t *testing.T) {
	s := newIntStorage(t)
	writeDoc(t, storageDir(s), "tom1.xml", docWithACD)
	require.NoError(t, s.Mount("mnt", "tom1.xml", "a/c"))

	assert.True(t, s.Unmount("mnt"))
	assert.False(t, s.Unmount("mnt"))
	assert.Empty(t, s.GetMounts("mnt"))

	_, err := s.Value("mnt/d")
	assert.ErrorIs(t, err, ErrUnmountedPath)
}

func TestConcurrentMountUnmount(t *testing.T) {
	s := newIntStorage(t)
	writeDoc(t, storageDir(s), "tom1.xml", `<tom><root></root></tom>`)

	const h = 32
	for i := 0; i < h; i++ {
		require.NoError(t, s.Mount(fmt.Sprintf("mnt%d", i), "tom1.xml", ""))
	}

	var wg sync.WaitGroup
	for i := 0; i < h; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = s.Mount(fmt.Sprintf("mnt%d", h+i), "tom1.xml", "")
			} else {
				s.Unmount(fmt.Sprintf("mnt%d", i))
			}
		}(i)
	}
	wg.Wait()

	for k := 0; k < h/2; k++ {
		assert.Len(t, s.GetMounts(fmt.Sprintf("mnt%d", 2*k)), 1)
		assert.Len(t, s.GetMounts(fmt.Sprintf("mnt%d", h+2*k)), 1)
		assert.Empty(t, s.GetMounts(fmt.Sprintf("mnt%d", 2*k+1)))
	}
}

func TestInsertBlockedWhileFresh(t *testing.T) {
	s := newIntStorage(t)
	writeDoc(t, storageDir(s), "tom1.xml", `<tom><root></root></tom>`)
	require.NoError(t, s.Mount("mnt", "tom1.xml", ""))

	ok, err := s.Insert("mnt/x", 1, 100)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Insert("mnt/x", 2, 200)
	require.NoError(t, err)
	assert.False(t, ok, "insert must not overwrite a fresh node")

	got, err := s.Value("mnt/x")
	require.NoError(t, err)
	assert.Equal(t, []KV[int, int]{{Key: 1, Mapped: 100}}, got)
}

func TestRemove(t *testing.T) {
	s := newIntStorage(t)
	writeDoc(t, storageDir(s), "tom1.xml", docWithACD)
	require.NoError(t, s.Mount("mnt", "tom1.xml", "a/c"))

	ok, err := s.Remove("mnt/d")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Remove("mnt/d")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := s.Value("mnt/d")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSetAsNewResetsLifetime(t *testing.T) {
	s := newIntStorage(t)
	writeDoc(t, storageDir(s), "tom1.xml", `<tom><root></root></tom>`)
	require.NoError(t, s.Mount("mnt", "tom1.xml", ""))

	_, err := s.InsertWithLifetime("mnt/x", 1, 100, time.Second)
	require.NoError(t, err)

	time.Sleep(2100 * time.Millisecond)

	n, err := s.SetMapped("mnt/x", 999)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "a plain setter must skip an outdated node")

	n, err = s.SetMappedAsNew("mnt/x", 999)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Value("mnt/x")
	require.NoError(t, err)
	assert.Equal(t, []KV[int, int]{{Key: 1, Mapped: 999}}, got)

	time.Sleep(200 * time.Millisecond)
	got, err = s.Value("mnt/x")
	require.NoError(t, err)
	assert.NotEmpty(t, got, "date_created should have reset on the as-new write")
}
