package health

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HealthChecker is implemented by component-level checkers (record store).
type HealthChecker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// ComponentStatus is the cached state of one dependency.
type ComponentStatus struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
}

// ServiceHealthChecker folds component checkers into one service-level flag.
type ServiceHealthChecker struct {
	healthy atomic.Int32
	deps    []HealthChecker
	log     zerolog.Logger
}

func NewServiceHealthChecker(log zerolog.Logger, deps ...HealthChecker) *ServiceHealthChecker {
	h := &ServiceHealthChecker{deps: deps, log: log}
	h.healthy.Store(0)
	return h
}

// IsHealthy returns cached service health.
func (h *ServiceHealthChecker) IsHealthy() bool { return h.healthy.Load() == 1 }

// Components reports each dependency's cached state, sorted by name.
func (h *ServiceHealthChecker) Components() []ComponentStatus {
	out := make([]ComponentStatus, 0, len(h.deps))
	for _, c := range h.deps {
		out = append(out, ComponentStatus{Name: c.Name(), Healthy: c.IsHealthy()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Evaluate recomputes the service flag from the dependencies and reports
// whether the flag changed.
func (h *ServiceHealthChecker) Evaluate() bool {
	var next int32 = 1
	for _, c := range h.deps {
		if !c.IsHealthy() {
			next = 0
			break
		}
	}
	prev := h.healthy.Swap(next)
	if prev == next {
		return false
	}
	if next == 1 {
		h.log.Info().Msg("service health: UP")
	} else {
		ev := h.log.Error()
		for _, c := range h.Components() {
			if !c.Healthy {
				ev = ev.Str("failing", c.Name)
			}
		}
		ev.Msg("service health: DOWN")
	}
	return true
}

// Start periodically evaluates dependency health until ctx is done.
func (h *ServiceHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.Evaluate()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Evaluate()
		}
	}
}
