// Package server exposes a tomstore.Storage[string, string] over HTTP.
//
// Key Components:
//
//   - Server: wraps a storage, a wire serializer, and a logger behind a
//     single POST /command endpoint plus a GET /metrics endpoint for
//     Prometheus scraping.
package server
