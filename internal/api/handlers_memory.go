package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	respond "github.com/familylane/memory-lane/internal/api/respond"
	"github.com/familylane/memory-lane/internal/api/validate"
	"github.com/familylane/memory-lane/internal/model"
	"github.com/familylane/memory-lane/internal/services"
)

const maxBodyBytes = 1 << 20

type MemoryHandler struct {
	svc *services.MemoryService
	log zerolog.Logger
}

func NewMemoryHandler(svc *services.MemoryService, log zerolog.Logger) *MemoryHandler {
	return &MemoryHandler{svc: svc, log: log}
}

// ListMemories GET /api/memories
func (h *MemoryHandler) ListMemories(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListMemories(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"memories": out,
		"count":    len(out),
	})
}

// GetMemory GET /api/memories/{id}
func (h *MemoryHandler) GetMemory(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.GetMemory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// CreateMemory POST /api/memories
func (h *MemoryHandler) CreateMemory(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSaveRequest(w, r)
	if !ok {
		return
	}
	out, err := h.svc.CreateMemory(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	respond.WriteCreated(w, out)
}

// UpdateMemory PUT /api/memories/{id}
func (h *MemoryHandler) UpdateMemory(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSaveRequest(w, r)
	if !ok {
		return
	}
	out, err := h.svc.UpdateMemory(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteMemory DELETE /api/memories/{id}
func (h *MemoryHandler) DeleteMemory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteMemory(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	respond.WriteNoContent(w)
}

func decodeSaveRequest(w http.ResponseWriter, r *http.Request) (model.SaveMemoryRequest, bool) {
	var req model.SaveMemoryRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return req, false
	}
	if err := validate.SaveMemory(req); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return req, false
	}
	return req, true
}
