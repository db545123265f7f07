package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/familylane/memory-lane/internal/api"
	"github.com/familylane/memory-lane/internal/calendar"
	"github.com/familylane/memory-lane/internal/model"
	"github.com/familylane/memory-lane/internal/timeline"
)

func newTimelineCmd(opts *rootOptions) *cobra.Command {
	var view, date, file string
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the grouped timeline for a day, week, month or year",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := timeline.ParseGranularity(view)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if file == "" {
				res, raw, err := newAPIClient(opts.api).Timeline(cmd.Context(), g.String(), date)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return writeRaw(out, raw)
				}
				renderTimeline(out, res)
				return nil
			}

			loc, err := loadLocation(opts.timeZone)
			if err != nil {
				return err
			}
			snapshot, err := readSnapshot(file)
			if err != nil {
				return err
			}
			anchor := calendar.Today(time.Now(), loc)
			if date != "" {
				if anchor, err = calendar.ParseDateKey(date, loc); err != nil {
					return err
				}
			}
			v, err := timeline.BuildView(snapshot, g, anchor)
			if err != nil {
				return err
			}
			res := &api.TimelineResponse{
				View:    g,
				Date:    calendar.LocalDateKey(anchor),
				Label:   v.Window.Label,
				Start:   v.Window.Start,
				End:     v.Window.End,
				Summary: timeline.BuildSummary(v.Items),
				Count:   v.Count(),
				Groups:  v.Groups,
			}
			if opts.jsonOut {
				return writeJSON(out, res)
			}
			renderTimeline(out, res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&view, "view", "g", "day", "Granularity: day, week, month or year")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Anchor date YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read memories from a JSON snapshot instead of the service")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show memory count and most recent date",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var st timeline.Stats
			if file == "" {
				res, raw, err := newAPIClient(opts.api).Stats(cmd.Context())
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return writeRaw(out, raw)
				}
				st = *res
			} else {
				loc, err := loadLocation(opts.timeZone)
				if err != nil {
					return err
				}
				snapshot, err := readSnapshot(file)
				if err != nil {
					return err
				}
				st = timeline.SnapshotStats(snapshot, loc)
				if opts.jsonOut {
					return writeJSON(out, st)
				}
			}
			_, _ = fmt.Fprintf(out, "Memories: %d\nUndated:  %d\nLatest:   %s\n", st.Total, st.Undated, st.LatestLabel)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read memories from a JSON snapshot instead of the service")
	return cmd
}

// renderTimeline prints a view as plain text, one block per group.
func renderTimeline(w io.Writer, res *api.TimelineResponse) {
	_, _ = fmt.Fprintf(w, "%s (%s)\n%s\n", res.Label, res.View, res.Summary)
	for _, g := range res.Groups {
		_, _ = fmt.Fprintf(w, "\n%s\n", g.Label)
		for _, e := range g.Items {
			line := "  - " + e.Highlight
			if e.DisplayCaption != "" && e.DisplayCaption != e.Highlight {
				line += " | " + e.DisplayCaption
			}
			if n := len(e.Media); n > 0 {
				line += " [" + mediaTag(e.Media) + "]"
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}
}

func mediaTag(items []model.MediaItem) string {
	videos := 0
	for _, it := range items {
		if it.IsVideo() {
			videos++
		}
	}
	if videos == 0 {
		return fmt.Sprintf("%d media", len(items))
	}
	return fmt.Sprintf("%d media, %d video", len(items), videos)
}

// readSnapshot loads a JSON array of memories, as returned by GET /api/memories
// or exported from the record store.
func readSnapshot(path string) ([]model.Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(data))
	var memories []model.Memory
	if strings.HasPrefix(trimmed, "{") {
		var wrapped struct {
			Memories []model.Memory `json:"memories"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return wrapped.Memories, nil
	}
	if err := json.Unmarshal(data, &memories); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return memories, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRaw(w io.Writer, raw []byte) error {
	_, err := fmt.Fprintln(w, strings.TrimSpace(string(raw)))
	return err
}
