// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TimelineViewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memory_lane",
			Subsystem: "timeline",
			Name:      "views_total",
			Help:      "Timeline views built, by granularity.",
		},
		[]string{"view"},
	)

	TimelineBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "memory_lane",
			Subsystem: "timeline",
			Name:      "build_duration_seconds",
			Help:      "Time to load the snapshot and group it into a view.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"view"},
	)

	UndatedMemories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "memory_lane",
			Name:      "undated_memories",
			Help:      "Records with no usable date in the last loaded snapshot.",
		},
	)

	MemoryWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memory_lane",
			Subsystem: "store",
			Name:      "writes_total",
			Help:      "Record writes by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	HandlerPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "memory_lane",
			Subsystem: "http",
			Name:      "panics_total",
			Help:      "Handler panics turned into 500 responses.",
		},
	)
)

// ObserveTimeline records one built view.
func ObserveTimeline(view string, started time.Time) {
	TimelineViewsTotal.WithLabelValues(view).Inc()
	TimelineBuildDuration.WithLabelValues(view).Observe(time.Since(started).Seconds())
}

// ObserveWrite counts a create, update or delete.
func ObserveWrite(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	MemoryWritesTotal.WithLabelValues(op, outcome).Inc()
}
