package tomstore

import (
	"strings"

	"github.com/ValentinKolb/tomkv/hashmap"
)

// resolvePath grows a candidate mount-identifier prefix of path one
// '/'-delimited segment at a time and returns a held read-accessor on the
// first registered mount identifier it matches, together with the
// remainder of path beyond that prefix (which may be empty). Mount
// identifiers may themselves contain '/', which is why the candidate is
// grown incrementally instead of splitting on the first '/'.
func (s *Storage[K, M]) resolvePath(path string) (hashmap.ReadAccessor[string, *mountHead], string, error) {
	var acc hashmap.ReadAccessor[string, *mountHead]

	for end := 0; end <= len(path); end++ {
		if end < len(path) && path[end] != '/' {
			continue
		}
		candidate := path[:end]
		if candidate == "" {
			continue
		}
		if s.mounts.Find(&acc, candidate) {
			remainder := strings.TrimPrefix(path[end:], "/")
			return acc, remainder, nil
		}
	}

	return acc, "", ErrUnmountedPath
}
