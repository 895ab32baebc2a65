// Package handler provides HTTP request handlers for quiver.
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/quiverdb/quiver/internal/core/domain"
	"github.com/quiverdb/quiver/internal/core/service"
	"github.com/quiverdb/quiver/internal/telemetry/logger"
)

// Handler is the main HTTP handler that routes requests to appropriate handlers.
type Handler struct {
	svc    *service.KVService
	logger logger.Logger
	mux    *http.ServeMux
}

// New creates a new Handler with the given service.
func New(svc *service.KVService, log logger.Logger) *Handler {
	h := &Handler{
		svc:    svc,
		logger: log,
		mux:    http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	// Health endpoints
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)

	// Key/value endpoints
	h.mux.HandleFunc("POST /kv", h.handlePutEntry)
	h.mux.HandleFunc("GET /kv/{key}", h.handleGetEntry)
	h.mux.HandleFunc("DELETE /kv/{key}", h.handleDeleteEntry)

	// Admin endpoints
	h.mux.HandleFunc("GET /admin/v1/status", h.handleAdminStatus)
	h.mux.HandleFunc("POST /admin/v1/flush", h.handleFlush)
	h.mux.HandleFunc("POST /admin/v1/cleanup", h.handleCleanup)
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := getRequestID(r)
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// getRequestID extracts the request ID set by middleware.
func getRequestID(r *http.Request) string {
	return r.Header.Get("X-Request-ID")
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsDomainError(err, "") {
		code := domain.GetErrorCode(err)
		status := errorCodeToHTTPStatus(code)
		h.writeError(w, r, status, code, err.Error(), nil)
		return
	}

	h.logger.Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, "QV-SYS-5000", "internal server error", nil)
}

// errorCodeToHTTPStatus maps error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4000"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-4290"):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
