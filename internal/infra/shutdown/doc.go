// Package shutdown provides graceful shutdown for quiver.
//
// This package handles process termination:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Programmatic shutdown via Trigger
//   - Timeout-based forced shutdown
//   - Cleanup hook registration, executed in reverse order
package shutdown
