package tomstore

import (
	"strings"

	"github.com/ValentinKolb/tomkv/hashmap"
	"github.com/ValentinKolb/tomkv/tomxml"
)

// basicOperation resolves path to a mount, fans body out across every
// binding visible in a single snapshot of that mount's list, and enforces
// the per-document lifecycle around each invocation: pending-counter
// bookkeeping, lazy tree materialization, write-back, and teardown once
// quiescent. body is never called for a path that fails to resolve; the
// per-binding "this binding doesn't have the node" case is handled inside
// body itself via tomxml.ErrBadPath, not here.
func (s *Storage[K, M]) basicOperation(path string, isWrite bool, body func(absPath string, tree *tomxml.Tree, priority int)) error {
	mountAcc, remainder, err := s.resolvePath(path)
	if err != nil {
		s.metrics.unmounted.Inc()
		return err
	}
	defer mountAcc.Release()

	if isWrite {
		s.metrics.writes.Inc()
	} else {
		s.metrics.reads.Inc()
	}

	// Snapshotting the head here, before visiting any binding, fixes the
	// set of bindings this call will see: a concurrent mount or unmount of
	// the same identifier cannot add to or shrink it afterward.
	for binding := mountAcc.Value().head.Load(); binding != nil; binding = binding.next.Load() {
		if err := s.visitBinding(binding, remainder, isWrite, body); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage[K, M]) visitBinding(binding *mountBinding, remainder string, isWrite bool, body func(absPath string, tree *tomxml.Tree, priority int)) error {
	var docAcc hashmap.ReadAccessor[string, *documentHandle]

	// Mount always creates the document handle before publishing a
	// binding that references it, so this lookup cannot miss.
	if !s.documents.Find(&docAcc, binding.tomID) {
		return nil
	}
	doc := docAcc.Value()
	docAcc.Release()

	if isWrite {
		doc.pendingWriters.Add(1)
	} else {
		doc.pendingReaders.Add(1)
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()

	if isWrite {
		doc.pendingWriters.Add(-1)
	} else {
		doc.pendingReaders.Add(-1)
	}

	if doc.tree == nil {
		tree, err := s.loadTree(doc.tomID)
		if err != nil {
			return err
		}
		doc.tree = tree
	}

	absPath := joinNodePath(binding.internalPath, remainder)

	body(absPath, doc.tree, binding.priority)

	if isWrite && doc.pendingWriters.Load() == 0 {
		if err := s.dumpTree(doc.tomID, doc.tree); err != nil {
			return err
		}
	}
	if doc.pendingReaders.Load() == 0 && doc.pendingWriters.Load() == 0 {
		doc.tree = nil
	}
	return nil
}

// joinNodePath builds the absolute node path "tom/root/..." from a
// binding's internal path and a resolved remainder, either of which may be
// empty, without introducing empty path segments.
func joinNodePath(internalPath, remainder string) string {
	segments := []string{"tom", "root"}
	if internalPath != "" {
		segments = append(segments, strings.Split(internalPath, "/")...)
	}
	if remainder != "" {
		segments = append(segments, strings.Split(remainder, "/")...)
	}
	return strings.Join(segments, "/")
}
