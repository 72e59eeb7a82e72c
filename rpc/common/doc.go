// Package common provides configuration and logging shared by the storage
// control surface's server and client.
//
// Key Components:
//
//   - ServerConfig / ClientConfig: plain configuration structs for the HTTP
//     server and its thin client, each with a String method used for the
//     serve command's startup banner.
//   - Logger: a small leveled logger used across rpc/.
package common
