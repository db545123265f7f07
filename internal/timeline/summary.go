package timeline

import (
	"fmt"
	"time"

	"github.com/familylane/memory-lane/internal/calendar"
	"github.com/familylane/memory-lane/internal/derive"
	"github.com/familylane/memory-lane/internal/model"
)

// EmptySummary is the summary of a period without memories.
const EmptySummary = "No memories yet for this period."

const summarySample = 3

// BuildSummary writes the offline recap of a filtered, sorted list.
func BuildSummary(items []derive.Entry) string {
	if len(items) == 0 {
		return EmptySummary
	}
	highlights := make([]string, 0, len(items))
	for _, e := range items {
		if e.Highlight != "" {
			highlights = append(highlights, e.Highlight)
		}
	}
	if len(highlights) == 0 {
		return fmt.Sprintf("%d memories.", len(items))
	}

	sample := highlights
	if len(sample) > summarySample {
		sample = sample[:summarySample]
	}
	var line string
	switch len(sample) {
	case 1:
		line = sample[0]
	case 2:
		line = sample[0] + " and " + sample[1]
	default:
		line = fmt.Sprintf("%s, %s, and %s", sample[0], sample[1], sample[2])
	}
	if remaining := len(highlights) - len(sample); remaining > 0 {
		return fmt.Sprintf("%d memories: %s and %d more.", len(items), line, remaining)
	}
	return fmt.Sprintf("%d memories: %s.", len(items), line)
}

// Stats is the header shown above the timeline.
type Stats struct {
	Total       int        `json:"total"`
	Undated     int        `json:"undated"`
	Latest      *time.Time `json:"latest,omitempty"`
	LatestLabel string     `json:"latestLabel"`
}

// SnapshotStats counts a snapshot and finds its most recent effective date.
func SnapshotStats(memories []model.Memory, loc *time.Location) Stats {
	s := Stats{Total: len(memories), LatestLabel: "--"}
	for _, m := range memories {
		t, err := derive.EffectiveDate(m, loc)
		if err != nil {
			s.Undated++
			continue
		}
		if s.Latest == nil || t.After(*s.Latest) {
			latest := t
			s.Latest = &latest
		}
	}
	if s.Latest != nil {
		s.LatestLabel = calendar.FormatDate(*s.Latest)
	}
	return s
}
