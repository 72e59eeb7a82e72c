// Package client is a thin HTTP client for rpc/server, used by the CLI's
// "tom" subcommands to drive a running server.
//
// Key Components:
//
//   - Client: one method per Command verb, each a POST to /command
//     followed by decoding the matching Result field.
package client
