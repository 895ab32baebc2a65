package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured code.
// The numeric suffix drives the HTTP status mapping at the API boundary
// (-4040 maps to 404, -4000 to 400, 5xxx to 500).
type DomainError struct {
	Code    string // Error code (e.g., "QV-KV-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support; two DomainErrors match on Code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks whether the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Key/value errors (KV).
var (
	// ErrKeyNotFound indicates the requested key is absent.
	ErrKeyNotFound = NewDomainError("QV-KV-4040", "key not found")

	// ErrInvalidKey indicates an empty or otherwise unusable key.
	ErrInvalidKey = NewDomainError("QV-KV-4000", "invalid key")
)

// Snapshot/persistence errors (SNAP).
var (
	// ErrSnapshotIO indicates a filesystem failure while reading or
	// writing snapshot files.
	ErrSnapshotIO = NewDomainError("QV-SNAP-5001", "snapshot i/o failure")

	// ErrSnapshotIntegrity indicates a checksum mismatch on snapshot load.
	// Always fatal to loading that shard.
	ErrSnapshotIntegrity = NewDomainError("QV-SNAP-5002", "snapshot checksum mismatch")

	// ErrSnapshotEncoding indicates malformed or unencodable snapshot data.
	ErrSnapshotEncoding = NewDomainError("QV-SNAP-5003", "snapshot encoding failure")

	// ErrDataDirNotFound indicates the snapshot directory is absent at
	// recovery time.
	ErrDataDirNotFound = NewDomainError("QV-SNAP-4040", "data directory not found")
)

// System errors (SYS).
var (
	// ErrInternal indicates an unexpected internal failure.
	ErrInternal = NewDomainError("QV-SYS-5000", "internal server error")

	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = NewDomainError("QV-SYS-4000", "bad request")
)
