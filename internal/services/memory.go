package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/familylane/memory-lane/internal/calendar"
	"github.com/familylane/memory-lane/internal/derive"
	"github.com/familylane/memory-lane/internal/metrics"
	"github.com/familylane/memory-lane/internal/model"
	"github.com/familylane/memory-lane/internal/store"
	"github.com/familylane/memory-lane/internal/timeline"
)

// MemoryService orchestrates the save flow and the timeline read path.
type MemoryService struct {
	store store.Store
	loc   *time.Location
	log   zerolog.Logger
	now   func() time.Time
}

func NewMemoryService(s store.Store, loc *time.Location, log zerolog.Logger) *MemoryService {
	if loc == nil {
		loc = time.Local
	}
	return &MemoryService{store: s, loc: loc, log: log, now: time.Now}
}

// TimelineResult is one rendered timeline page.
type TimelineResult struct {
	timeline.View
	Summary string `json:"summary"`
}

// Location is the zone used for local calendar days.
func (s *MemoryService) Location() *time.Location { return s.loc }

// Today is the start of the current local day.
func (s *MemoryService) Today() time.Time { return calendar.Today(s.now(), s.loc) }

// ResolveAnchor parses a YYYY-MM-DD anchor; empty means today.
func (s *MemoryService) ResolveAnchor(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.Today(), nil
	}
	t, err := calendar.ParseDateKey(date, s.loc)
	if err != nil {
		return time.Time{}, model.NewValidationError("date", "must be YYYY-MM-DD")
	}
	return t, nil
}

// Timeline reloads the snapshot and groups it for the window around anchor.
func (s *MemoryService) Timeline(ctx context.Context, g timeline.Granularity, anchor time.Time) (*TimelineResult, error) {
	started := time.Now()
	if !g.IsValid() {
		return nil, timeline.ErrInvalidGranularity
	}
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	view, err := timeline.BuildView(snapshot, g, anchor.In(s.loc))
	if err != nil {
		return nil, err
	}
	metrics.ObserveTimeline(g.String(), started)
	s.log.Debug().
		Str("view", g.String()).
		Str("window", view.Window.Label).
		Int("snapshot", len(snapshot)).
		Int("count", view.Count()).
		Msg("timeline built")
	return &TimelineResult{View: view, Summary: timeline.BuildSummary(view.Items)}, nil
}

// Stats summarises the whole snapshot, undated records included.
func (s *MemoryService) Stats(ctx context.Context) (timeline.Stats, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return timeline.Stats{}, err
	}
	return timeline.SnapshotStats(snapshot, s.loc), nil
}

func (s *MemoryService) ListMemories(ctx context.Context) ([]*model.Memory, error) {
	return s.store.Memories().List(ctx)
}

func (s *MemoryService) GetMemory(ctx context.Context, id string) (*model.Memory, error) {
	return s.store.Memories().GetByID(ctx, id)
}

// CreateMemory saves a new memory from the add form.
func (s *MemoryService) CreateMemory(ctx context.Context, req model.SaveMemoryRequest) (*model.Memory, error) {
	m, err := s.buildRecord(req, nil)
	if err != nil {
		return nil, err
	}
	out, err := s.store.Memories().Create(ctx, m)
	metrics.ObserveWrite("create", err)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("memory_id", out.ID).Int("media", len(out.MediaItems)).Msg("memory created")
	return out, nil
}

// UpdateMemory saves the edit form over an existing memory. Uploaded media
// replace the attached media; otherwise caption lines re-caption them.
func (s *MemoryService) UpdateMemory(ctx context.Context, id string, req model.SaveMemoryRequest) (*model.Memory, error) {
	existing, err := s.store.Memories().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := s.buildRecord(req, existing)
	if err != nil {
		return nil, err
	}
	out, err := s.store.Memories().Update(ctx, id, m)
	metrics.ObserveWrite("update", err)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("memory_id", id).Msg("memory updated")
	return out, nil
}

func (s *MemoryService) DeleteMemory(ctx context.Context, id string) error {
	err := s.store.Memories().Delete(ctx, id)
	metrics.ObserveWrite("delete", err)
	if err == nil {
		s.log.Info().Str("memory_id", id).Msg("memory deleted")
	}
	return err
}

func (s *MemoryService) snapshot(ctx context.Context) ([]model.Memory, error) {
	list, err := s.store.Memories().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Memory, 0, len(list))
	undated := 0
	for _, m := range list {
		if m == nil {
			continue
		}
		if _, err := derive.EffectiveDate(*m, s.loc); err != nil {
			undated++
		}
		out = append(out, *m)
	}
	metrics.UndatedMemories.Set(float64(undated))
	return out, nil
}

// buildRecord turns form input into the stored shape: derived captions and
// the primary media item mirrored into the legacy fields.
func (s *MemoryService) buildRecord(req model.SaveMemoryRequest, existing *model.Memory) (*model.Memory, error) {
	draft := model.Memory{
		Title:      strings.TrimSpace(req.Title),
		Story:      strings.TrimSpace(req.Story),
		Location:   strings.TrimSpace(req.Location),
		MemoryDate: strings.TrimSpace(req.MemoryDate),
		EntryDate:  strings.TrimSpace(req.EntryDate),
		OwnerEmail: strings.TrimSpace(req.OwnerEmail),
		Tags:       cleanTags(req.Tags),
	}
	if err := s.validateDate("memoryDate", draft.MemoryDate); err != nil {
		return nil, err
	}
	if err := s.validateDate("entryDate", draft.EntryDate); err != nil {
		return nil, err
	}
	for i, up := range req.Media {
		if strings.TrimSpace(up.URL) == "" {
			return nil, model.NewValidationError("media", "item "+strconv.Itoa(i)+" has no url")
		}
	}

	lines := derive.CaptionLines(req.Captions)
	items := []model.MediaItem{}
	if existing != nil {
		items = derive.MediaItems(*existing)
		if draft.OwnerEmail == "" {
			draft.OwnerEmail = existing.OwnerEmail
		}
	}
	switch {
	case len(req.Media) > 0:
		items = make([]model.MediaItem, 0, len(req.Media))
		for i, up := range req.Media {
			provided := strings.TrimSpace(up.Caption)
			if provided == "" && i < len(lines) {
				provided = lines[i]
			}
			items = append(items, model.MediaItem{
				URL:     strings.TrimSpace(up.URL),
				Type:    up.Type,
				Caption: derive.CaptionForUploadedFile(draft, up.FileName, provided, s.loc),
			})
		}
	case len(items) > 0 && len(lines) > 0:
		items = derive.ApplyCaptionLines(items, lines, draft, s.loc)
	}

	draft.MediaItems = items
	if len(items) > 0 {
		draft.MediaURL = items[0].URL
		draft.MediaType = items[0].Type
		draft.MediaCaption = items[0].Caption
	}
	return &draft, nil
}

func (s *MemoryService) validateDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := calendar.ParseDateKey(value, s.loc); err != nil {
		return model.NewValidationError(field, "must be YYYY-MM-DD")
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := []string{}
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
