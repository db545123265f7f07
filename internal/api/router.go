package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/familylane/memory-lane/internal/api/recovery"
	"github.com/familylane/memory-lane/internal/services"
)

// NewRouter wires HTTP routes to handlers.
func NewRouter(svc *services.MemoryService, hc ServiceHealth, log zerolog.Logger) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware(log))

	tl := NewTimelineHandler(svc, log)
	root.HandleFunc("/api/timeline", tl.GetTimeline).Methods("GET")
	root.HandleFunc("/api/stats", tl.GetStats).Methods("GET")

	memory := NewMemoryHandler(svc, log)
	root.HandleFunc("/api/memories", memory.ListMemories).Methods("GET")
	root.HandleFunc("/api/memories", memory.CreateMemory).Methods("POST")
	root.HandleFunc("/api/memories/{id}", memory.GetMemory).Methods("GET")
	root.HandleFunc("/api/memories/{id}", memory.UpdateMemory).Methods("PUT")
	root.HandleFunc("/api/memories/{id}", memory.DeleteMemory).Methods("DELETE")

	root.HandleFunc("/api/health", NewHealthHandler(hc).CheckHealth).Methods("GET")
	root.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return root
}
