// Package rpc is the storage's HTTP control surface: a single verb-dispatched
// command endpoint plus a thin client, sitting directly on top of
// tomstore.Storage[string, string].
//
// The package is organized into several subpackages:
//
//   - common: Configuration structs (ServerConfig, ClientConfig) and a small
//     leveled Logger shared by the server and client.
//
//   - serializer: Command/Result wire codecs, with JSON and GOB
//     implementations.
//
//   - server: An HTTP server exposing one POST endpoint that decodes a
//     Command, dispatches it against a *tomstore.Storage[string, string],
//     and returns a Result, plus a GET /metrics endpoint for Prometheus
//     scraping.
//
//   - client: A thin HTTP client mirroring the server's verbs; the CLI's
//     "tom" subcommands drive a running server through it.
package rpc
