// Package calendar holds the date arithmetic used to build timeline windows.
//
// Every function works in the location carried by its time argument; callers
// pick the family's time zone once and pass local times in.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
)

// Display layouts. They are fixed English layouts so keys and labels do not
// depend on the host locale.
const (
	DateLayout      = "Jan 2, 2006"
	MonthLayout     = "January"
	MonthYearLayout = "January 2006"
	YearLayout      = "2006"
)

// StartOfDay returns midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	// time.Weekday has Sunday=0; shift so Monday=0 ... Sunday=6.
	offset := (int(day.Weekday()) + 6) % 7
	return AddDays(day, -offset)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfNextMonth returns midnight of the first day of the month after t.
func StartOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}

// StartOfYear returns midnight of January 1st of t's year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// StartOfNextYear returns midnight of January 1st of the year after t.
func StartOfNextYear(t time.Time) time.Time {
	return time.Date(t.Year()+1, time.January, 1, 0, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days, keeping the wall clock time.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// LocalDateKey renders t as YYYY-MM-DD in t's location.
func LocalDateKey(t time.Time) string {
	return t.Format(strfmt.RFC3339FullDate)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(strfmt.RFC3339FullDate, strings.TrimSpace(key), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// Date-times without a zone designator are wall-clock times in the caller's location.
var localLayouts = []string{
	strfmt.ISO8601LocalTime,
	strfmt.ISO8601TimeWithReducedPrecisionLocaltime,
	strfmt.ISO8601TimeUniversalSortableDateTimePattern,
}

// ParseTimestamp accepts a full date (local midnight in loc), a zone-less
// date-time (wall clock in loc) or an ISO-8601 date-time with an offset, and
// returns the instant expressed in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if len(s) == len(strfmt.RFC3339FullDate) {
		return ParseDateKey(s, loc)
	}
	if !hasZone(s) {
		for _, layout := range localLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return time.Time(dt).In(loc), nil
}

// hasZone reports whether the time part of s ends in Z or a numeric offset.
func hasZone(s string) bool {
	if len(s) <= len(strfmt.RFC3339FullDate) {
		return false
	}
	clock := s[len(strfmt.RFC3339FullDate):]
	if strings.HasSuffix(clock, "Z") || strings.HasSuffix(clock, "z") {
		return true
	}
	return strings.ContainsAny(clock, "+-")
}

// Today returns midnight of now's day in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return StartOfDay(now.In(loc))
}

// FormatDate renders t as "Jan 2, 2006".
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// FormatMonth renders the full month name of t.
func FormatMonth(t time.Time) string { return t.Format(MonthLayout) }

// FormatMonthYear renders t as "January 2006".
func FormatMonthYear(t time.Time) string { return t.Format(MonthYearLayout) }

// FormatYear renders the four digit year of t.
func FormatYear(t time.Time) string { return t.Format(YearLayout) }
