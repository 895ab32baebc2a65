// Package handler provides HTTP request handlers for quiver.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/quiverdb/quiver/internal/core/service"
)

// handlePutEntry handles POST /kv.
func (h *Handler) handlePutEntry(w http.ResponseWriter, r *http.Request) {
	var req PutEntryRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "QV-SYS-4000", "invalid request body", nil)
		return
	}

	if req.Key == "" {
		h.writeError(w, r, http.StatusBadRequest, "QV-KV-4000", "key is required", nil)
		return
	}

	err := h.svc.Put(r.Context(), &service.PutRequest{
		Key:   req.Key,
		Value: req.Value,
		TTL:   req.TTL,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, map[string]string{"key": req.Key})
}

// handleGetEntry handles GET /kv/{key}.
func (h *Handler) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	value, err := h.svc.Get(r.Context(), key)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, EntryResponse{
		Key:   key,
		Value: value,
	})
}

// handleDeleteEntry handles DELETE /kv/{key}.
func (h *Handler) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	if err := h.svc.Delete(r.Context(), key); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("X-Request-ID", getRequestID(r))
	w.WriteHeader(http.StatusNoContent)
}
