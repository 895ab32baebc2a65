// Package main provides the entry point for quiver-server.
//
// The server provides:
//
//   - HTTP API for key/value operations
//   - Periodic per-shard snapshot persistence
//   - Periodic TTL eviction
//   - Prometheus metrics
//
// Usage:
//
//	quiver-server [flags]
//	quiver-server --config /path/to/config.yaml
//	quiver-server --load --directory /var/lib/quiver
//
// The server loads configuration, initializes infrastructure
// components, starts the maintenance loops, and serves the HTTP API
// until terminated.
package main
