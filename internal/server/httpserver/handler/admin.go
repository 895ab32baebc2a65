// Package handler provides HTTP request handlers for quiver.
package handler

import (
	"net/http"
	"time"

	"github.com/quiverdb/quiver/internal/infra/buildinfo"
)

// handleAdminStatus handles GET /admin/v1/status.
func (h *Handler) handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	status := h.svc.Status(r.Context())
	info := buildinfo.Get()

	h.writeJSON(w, r, http.StatusOK, StatusResponse{
		Entries: status.Entries,
		Shards:  status.Shards,
		DataDir: status.DataDir,
		Version: info.Version,
		Commit:  info.Commit,
	})
}

// handleFlush handles POST /admin/v1/flush.
func (h *Handler) handleFlush(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Flush(r.Context()); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"flushed_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleCleanup handles POST /admin/v1/cleanup.
func (h *Handler) handleCleanup(w http.ResponseWriter, r *http.Request) {
	removed := h.svc.Cleanup(r.Context())

	h.writeJSON(w, r, http.StatusOK, CleanupResponse{Removed: removed})
}
