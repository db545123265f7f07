// Package timeline groups a snapshot of memories into the day, week, month or
// year view around an anchor date and writes the period summary.
package timeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/familylane/memory-lane/internal/calendar"
)

// Granularity is the aggregation period of a view.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

// ErrInvalidGranularity is returned for any granularity other than the four above.
var ErrInvalidGranularity = errors.New("invalid granularity")

// Granularities lists the supported values in toggle order.
func Granularities() []Granularity { return []Granularity{Day, Week, Month, Year} }

// IsValid reports whether g is one of the supported granularities.
func (g Granularity) IsValid() bool {
	switch g {
	case Day, Week, Month, Year:
		return true
	default:
		return false
	}
}

func (g Granularity) String() string { return string(g) }

// ParseGranularity reads a granularity from user input; empty means Day.
func ParseGranularity(s string) (Granularity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Day, nil
	}
	g := Granularity(s)
	if !g.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidGranularity, s)
	}
	return g, nil
}

// Window is the half-open interval [Start, End) shown by a view.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ResolveRange computes the window of granularity g around anchor, in
// anchor's location.
func ResolveRange(g Granularity, anchor time.Time) (Window, error) {
	switch g {
	case Day:
		start := calendar.StartOfDay(anchor)
		return Window{Start: start, End: calendar.AddDays(start, 1), Label: calendar.FormatDate(start)}, nil
	case Week:
		start := calendar.StartOfWeek(anchor)
		end := calendar.AddDays(start, 7)
		label := calendar.FormatDate(start) + " - " + calendar.FormatDate(calendar.AddDays(end, -1))
		return Window{Start: start, End: end, Label: label}, nil
	case Month:
		start := calendar.StartOfMonth(anchor)
		return Window{Start: start, End: calendar.StartOfNextMonth(start), Label: calendar.FormatMonthYear(start)}, nil
	case Year:
		start := calendar.StartOfYear(anchor)
		return Window{Start: start, End: calendar.StartOfNextYear(start), Label: calendar.FormatYear(start)}, nil
	default:
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidGranularity, string(g))
	}
}
