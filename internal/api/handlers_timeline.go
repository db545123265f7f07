package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	respond "github.com/familylane/memory-lane/internal/api/respond"
	"github.com/familylane/memory-lane/internal/calendar"
	"github.com/familylane/memory-lane/internal/services"
	"github.com/familylane/memory-lane/internal/timeline"
)

type TimelineHandler struct {
	svc *services.MemoryService
	log zerolog.Logger
}

func NewTimelineHandler(svc *services.MemoryService, log zerolog.Logger) *TimelineHandler {
	return &TimelineHandler{svc: svc, log: log}
}

// TimelineResponse is the body of GET /api/timeline.
type TimelineResponse struct {
	View    timeline.Granularity `json:"view"`
	Date    string               `json:"date"`
	Label   string               `json:"label"`
	Start   time.Time            `json:"start"`
	End     time.Time            `json:"end"`
	Summary string               `json:"summary"`
	Count   int                  `json:"count"`
	Groups  []timeline.Group     `json:"groups"`
}

// GetTimeline GET /api/timeline?view=day|week|month|year&date=YYYY-MM-DD
func (h *TimelineHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	g, err := timeline.ParseGranularity(q.Get("view"))
	if err != nil {
		respond.WriteBadRequest(w, "view must be one of day, week, month, year")
		return
	}
	anchor, err := h.svc.ResolveAnchor(q.Get("date"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	res, err := h.svc.Timeline(r.Context(), g, anchor)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	groups := res.Groups
	if groups == nil {
		groups = []timeline.Group{}
	}
	respond.WriteJSON(w, http.StatusOK, TimelineResponse{
		View:    g,
		Date:    calendar.LocalDateKey(anchor),
		Label:   res.Window.Label,
		Start:   res.Window.Start,
		End:     res.Window.End,
		Summary: res.Summary,
		Count:   res.Count(),
		Groups:  groups,
	})
}

// GetStats GET /api/stats
func (h *TimelineHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, st)
}
