package tomstore

import (
	"sync/atomic"

	"github.com/ValentinKolb/tomkv/hashmap"
	"github.com/ValentinKolb/tomkv/internal/backoff"
)

// mountBinding is one (document, internal path, priority) record attached
// to a mount identifier. Its fields never change after publication; only
// next is ever rewritten, and only via CAS.
type mountBinding struct {
	tomID        string
	internalPath string
	priority     int
	next         atomic.Pointer[mountBinding]
}

// mountHead is the mount registry's mapped value: an atomic head pointer
// to a mount-binding list.
type mountHead struct {
	head atomic.Pointer[mountBinding]
}

// MountInfo is one entry returned by GetMounts.
type MountInfo struct {
	TomID        string
	InternalPath string
}

// Mount registers a binding of mountID to the node at internalPath within
// tomID, at the default priority of 0.
func (s *Storage[K, M]) Mount(mountID, tomID, internalPath string) error {
	return s.MountWithPriority(mountID, tomID, internalPath, 0)
}

// MountWithPriority registers a binding of mountID to the node at
// internalPath within tomID, at the given priority. Bindings are never
// deduplicated: mounting the same triple twice yields two list entries.
func (s *Storage[K, M]) MountWithPriority(mountID, tomID, internalPath string, priority int) error {
	if err := s.ensureDocument(tomID); err != nil {
		return err
	}

	newNode := &mountBinding{tomID: tomID, internalPath: internalPath, priority: priority}

	var acc hashmap.ReadAccessor[string, *mountHead]
	defer acc.Release()

	s.metrics.mounts.Inc()

	fresh := &mountHead{}
	fresh.head.Store(newNode)
	if s.mounts.Emplace(&acc, mountID, fresh) {
		return nil
	}

	head := acc.Value()
	var b backoff.Backoff
	for {
		expected := head.head.Load()
		newNode.next.Store(expected)
		if head.head.CompareAndSwap(expected, newNode) {
			return nil
		}
		b.Pause()
	}
}

// Unmount removes every binding registered under mountID and reports
// whether mountID was present. The document handles those bindings
// referenced are not reclaimed; they persist until Storage is closed,
// since other mounts may still reference the same document.
func (s *Storage[K, M]) Unmount(mountID string) bool {
	var acc hashmap.WriteAccessor[string, *mountHead]
	if !s.mounts.FindWrite(&acc, mountID) {
		return false
	}
	(*acc.Value()).head.Store(nil)
	s.mounts.EraseAccessor(&acc)
	s.metrics.unmounts.Inc()
	return true
}

// GetMounts returns a snapshot of every binding registered under mountID,
// most recently mounted first.
func (s *Storage[K, M]) GetMounts(mountID string) []MountInfo {
	var acc hashmap.ReadAccessor[string, *mountHead]
	defer acc.Release()

	if !s.mounts.Find(&acc, mountID) {
		return nil
	}

	var out []MountInfo
	for b := acc.Value().head.Load(); b != nil; b = b.next.Load() {
		out = append(out, MountInfo{TomID: b.tomID, InternalPath: b.internalPath})
	}
	return out
}
