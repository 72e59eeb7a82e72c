// Package tommgmt provides the filesystem-facing utilities for creating
// and deleting tom documents: single-threaded helpers on top of the
// filesystem and tomxml, kept deliberately outside the concurrent storage
// core. NewID produces a fresh document identifier with github.com/google/uuid
// when a caller doesn't want to name a tom itself.
package tommgmt
