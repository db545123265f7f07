// Package derive computes the display fields of a memory that are not stored:
// its effective date, normalised media list, caption and highlight.
package derive

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/familylane/memory-lane/internal/calendar"
	"github.com/familylane/memory-lane/internal/model"
)

var (
	// ErrUndated is returned when a memory carries no date field at all.
	ErrUndated = errors.New("memory has no date")
	// ErrMalformedDate is returned when the chosen date field does not parse.
	ErrMalformedDate = errors.New("memory date is malformed")
)

// IsUndated reports whether err means the memory cannot be placed on the timeline.
func IsUndated(err error) bool {
	return errors.Is(err, ErrUndated) || errors.Is(err, ErrMalformedDate)
}

// EffectiveDate returns the date used to order and group m: MemoryDate, else
// EntryDate, else CreatedAt. The first non-blank field is the one parsed; a
// malformed value does not fall through to the next field.
func EffectiveDate(m model.Memory, loc *time.Location) (time.Time, error) {
	raw := firstNonBlank(m.MemoryDate, m.EntryDate, m.CreatedAt)
	if raw == "" {
		return time.Time{}, ErrUndated
	}
	t, err := calendar.ParseTimestamp(raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedDate, err)
	}
	return t, nil
}

// MediaItems returns m's media list, synthesising a single item from the
// legacy fields when the list is empty.
func MediaItems(m model.Memory) []model.MediaItem {
	if len(m.MediaItems) > 0 {
		return m.MediaItems
	}
	if m.MediaURL != "" {
		return []model.MediaItem{{URL: m.MediaURL, Type: m.MediaType, Caption: m.MediaCaption}}
	}
	return []model.MediaItem{}
}

// Entry is a memory together with its derived display fields.
type Entry struct {
	Memory         model.Memory      `json:"memory"`
	EffectiveDate  time.Time         `json:"effectiveDate"`
	Dated          bool              `json:"dated"`
	DateKey        string            `json:"dateKey,omitempty"`
	Media          []model.MediaItem `json:"media"`
	DisplayCaption string            `json:"displayCaption"`
	CaptionSummary string            `json:"captionSummary,omitempty"`
	Highlight      string            `json:"highlight"`
}

// Enrich normalises a snapshot once, in input order. Undated memories are
// kept with Dated=false; windowed views decide what to do with them.
func Enrich(memories []model.Memory, loc *time.Location) []Entry {
	out := make([]Entry, 0, len(memories))
	for _, m := range memories {
		out = append(out, NewEntry(m, loc))
	}
	return out
}

// NewEntry derives the display fields of a single memory.
func NewEntry(m model.Memory, loc *time.Location) Entry {
	media := MediaItems(m)
	e := Entry{
		Memory:         m,
		Media:          media,
		DisplayCaption: displayCaption(m, media, loc),
		Highlight:      Highlight(m),
	}
	if len(media) > 1 {
		e.CaptionSummary = MediaCaptionSummary(media)
	}
	if t, err := EffectiveDate(m, loc); err == nil {
		e.EffectiveDate = t
		e.Dated = true
		e.DateKey = calendar.LocalDateKey(t)
	}
	return e
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
