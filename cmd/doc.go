// Package cmd implements the command-line interface for tomkv. It provides
// a hierarchical command structure: running the HTTP server, and driving a
// running server as a client.
//
// The package is organized into several subpackages:
//
//   - serve: Starts the HTTP server hosting a tomstore.Storage.
//   - tom: Commands for mounting toms and reading/writing through a mount
//     (mount, unmount, mounts, key, mapped, value, set-key, set-mapped,
//     set-value, insert, remove).
//   - util: Shared utilities for command-line processing and configuration
//     (internal use).
//
// See tomkv -help for a list of all commands.
package cmd
