package tomstore

import (
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/ValentinKolb/tomkv/hashmap"
	"github.com/ValentinKolb/tomkv/tomxml"
)

// documentHandle guards one tom document. Its tree is materialized lazily
// on first use by any operation and torn down again once no operation has
// it pinned; outside of an in-flight operation it sits at tree == nil.
type documentHandle struct {
	tomID string

	mu   sync.Mutex
	tree *tomxml.Tree

	pendingReaders atomic.Int64
	pendingWriters atomic.Int64
}

// ensureDocument inserts a handle for tomID into the document registry if
// one is not already present. The handle's tree is left unmaterialized.
func (s *Storage[K, M]) ensureDocument(tomID string) error {
	var acc hashmap.ReadAccessor[string, *documentHandle]
	defer acc.Release()
	s.documents.Emplace(&acc, tomID, &documentHandle{tomID: tomID})
	return nil
}

// loadTree parses tomID's document from disk.
func (s *Storage[K, M]) loadTree(tomID string) (*tomxml.Tree, error) {
	return tomxml.LoadFile(filepath.Join(s.dir, tomID))
}

// dumpTree serializes tree back to tomID's document on disk.
func (s *Storage[K, M]) dumpTree(tomID string, tree *tomxml.Tree) error {
	return tree.DumpFile(filepath.Join(s.dir, tomID))
}
