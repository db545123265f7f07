package api

import (
	"net/http"
	"time"

	respond "github.com/familylane/memory-lane/internal/api/respond"
	"github.com/familylane/memory-lane/internal/health"
)

// ServiceHealth is the cached view of dependency health.
type ServiceHealth interface {
	IsHealthy() bool
	Components() []health.ComponentStatus
}

// HealthHandler handles health check endpoints
type HealthHandler struct{ svc ServiceHealth }

func NewHealthHandler(svc ServiceHealth) *HealthHandler { return &HealthHandler{svc: svc} }

// CheckHealth handles GET /api/health
// Always returns 200; body reports healthy/unhealthy. 500 indicates handler failure only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	components := []health.ComponentStatus{}
	if h.svc != nil {
		if h.svc.IsHealthy() {
			status = "healthy"
		}
		components = h.svc.Components()
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
