// Package handler provides HTTP request handlers for quiver.
//
// This package contains handlers for all HTTP endpoints:
//
//   - kv.go: Key/value operations
//   - admin.go: Maintenance triggers and status
//   - health.go: Health and readiness checks
//
// All handlers follow a consistent pattern:
//
//   - Parse and validate request
//   - Call domain service
//   - Format and return response
//   - Handle errors with appropriate HTTP status codes
package handler
