package tomstore

import "errors"

// ErrUnmountedPath is returned by every observer, modifier, insert, and
// remove call whose path does not resolve to a registered mount
// identifier.
var ErrUnmountedPath = errors.New("tomstore: unmounted path")
