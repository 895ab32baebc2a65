// Package handler provides HTTP request handlers for quiver.
package handler

import "time"

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses Prometheus format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// PutEntryRequest is the request body for POST /kv.
type PutEntryRequest struct {
	Key   string   `json:"key"`
	Value any      `json:"value"`
	TTL   *float64 `json:"ttl,omitempty"` // seconds; absent means never expires
}

// EntryResponse represents a stored entry in API responses.
type EntryResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// CleanupResponse is the response body for POST /admin/v1/cleanup.
type CleanupResponse struct {
	Removed int `json:"removed"`
}

// StatusResponse is the response body for GET /admin/v1/status.
type StatusResponse struct {
	Entries int    `json:"entries"`
	Shards  int    `json:"shards"`
	DataDir string `json:"data_dir"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}
