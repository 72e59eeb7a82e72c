package tomstore

import (
	"github.com/ValentinKolb/tomkv/tomxml"
)

// KV is one surviving (key, mapped) pair returned by Value.
type KV[K, M any] struct {
	Key    K
	Mapped M
}

// priorityEntry accumulates every mapped value contributed at the winning
// priority for one key.
type priorityEntry[M any] struct {
	priority int
	mappeds  []M
}

// resolvePriority runs body over every binding visible to path and
// performs the incremental priority resolution described for the
// observer family: a strictly higher priority replaces everything seen so
// far for a key, an equal priority accumulates another entry, and a
// strictly lower priority is ignored.
func (s *Storage[K, M]) resolvePriority(path string) (map[K]*priorityEntry[M], error) {
	agg := map[K]*priorityEntry[M]{}

	visit := func(absPath string, tree *tomxml.Tree, priority int) {
		nv, ok := readNode[K, M](tree, absPath, s.keyCodec, s.mappedCodec)
		if !ok || nv.outdated() {
			return
		}

		existing, has := agg[nv.Key]
		switch {
		case !has:
			agg[nv.Key] = &priorityEntry[M]{priority: priority, mappeds: []M{nv.Mapped}}
		case priority > existing.priority:
			agg[nv.Key] = &priorityEntry[M]{priority: priority, mappeds: []M{nv.Mapped}}
		case priority == existing.priority:
			existing.mappeds = append(existing.mappeds, nv.Mapped)
		}
	}

	if err := s.basicOperation(path, false, visit); err != nil {
		return nil, err
	}
	return agg, nil
}

// Key returns every key value that survived priority resolution at path.
// Bindings at the same winning priority that produce the same key each
// contribute a duplicate entry; the result is never deduplicated.
func (s *Storage[K, M]) Key(path string) ([]K, error) {
	agg, err := s.resolvePriority(path)
	if err != nil {
		return nil, err
	}
	var out []K
	for k, e := range agg {
		for range e.mappeds {
			out = append(out, k)
		}
	}
	return out, nil
}

// Mapped returns the mapped component of every surviving entry at path.
func (s *Storage[K, M]) Mapped(path string) ([]M, error) {
	agg, err := s.resolvePriority(path)
	if err != nil {
		return nil, err
	}
	var out []M
	for _, e := range agg {
		out = append(out, e.mappeds...)
	}
	return out, nil
}

// Value returns every surviving (key, mapped) pair at path.
func (s *Storage[K, M]) Value(path string) ([]KV[K, M], error) {
	agg, err := s.resolvePriority(path)
	if err != nil {
		return nil, err
	}
	var out []KV[K, M]
	for k, e := range agg {
		for _, m := range e.mappeds {
			out = append(out, KV[K, M]{Key: k, Mapped: m})
		}
	}
	return out, nil
}
