package tomstore

import (
	"github.com/ValentinKolb/tomkv/hashmap"
)

// Storage is a virtual tree-mount store over a directory of tom documents.
// K and M are the key and mapped types every node in every mounted
// document is decoded as; Codecs tell Storage how to translate them to
// and from the text a tom document stores.
type Storage[K comparable, M any] struct {
	dir         string
	keyCodec    Codec[K]
	mappedCodec Codec[M]

	mounts    *hashmap.Map[string, *mountHead]
	documents *hashmap.Map[string, *documentHandle]

	metrics *storageMetrics
}

// New constructs a Storage rooted at dir, where every mounted document
// resides.
func New[K comparable, M any](dir string, keyCodec Codec[K], mappedCodec Codec[M]) *Storage[K, M] {
	seed := hashmap.NewSeed()
	return &Storage[K, M]{
		dir:         dir,
		keyCodec:    keyCodec,
		mappedCodec: mappedCodec,
		mounts:      hashmap.New[string, *mountHead](hashmap.StringHasher(seed)),
		documents:   hashmap.New[string, *documentHandle](hashmap.StringHasher(seed)),
		metrics:     newStorageMetrics(),
	}
}

// Close tears down every mount binding list. It is only safe to call once
// no other operation on s is in flight.
func (s *Storage[K, M]) Close() error {
	s.mounts.ForEach(func(_ string, head *mountHead) bool {
		head.head.Store(nil)
		return true
	})
	s.mounts.Teardown()
	s.documents.Teardown()
	s.metrics.unregister()
	return nil
}
