package timeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familylane/memory-lane/internal/derive"
	"github.com/familylane/memory-lane/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ids(items []derive.Entry) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.Memory.ID)
	}
	return out
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, Day, g)

	g, err = ParseGranularity(" Week ")
	require.NoError(t, err)
	assert.Equal(t, Week, g)

	_, err = ParseGranularity("decade")
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

func TestResolveRange(t *testing.T) {
	anchor := time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC)
	tests := []struct {
		g     Granularity
		start time.Time
		end   time.Time
		label string
	}{
		{Day, day(2024, 1, 3), day(2024, 1, 4), "Jan 3, 2024"},
		{Week, day(2024, 1, 1), day(2024, 1, 8), "Jan 1, 2024 - Jan 7, 2024"},
		{Month, day(2024, 1, 1), day(2024, 2, 1), "January 2024"},
		{Year, day(2024, 1, 1), day(2025, 1, 1), "2024"},
	}
	for _, tt := range tests {
		t.Run(string(tt.g), func(t *testing.T) {
			w, err := ResolveRange(tt.g, anchor)
			require.NoError(t, err)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, tt.end, w.End)
			assert.Equal(t, tt.label, w.Label)
			assert.True(t, w.End.After(w.Start))
			assert.NotEmpty(t, w.Label)
		})
	}
}

func TestResolveRange_InvalidGranularity(t *testing.T) {
	_, err := ResolveRange(Granularity("fortnight"), day(2024, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidGranularity)

	_, err = BuildView(nil, Granularity("fortnight"), day(2024, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

func TestWindow_HalfOpen(t *testing.T) {
	w := Window{Start: day(2024, 1, 1), End: day(2024, 1, 8)}
	assert.True(t, w.Contains(day(2024, 1, 1)))
	assert.True(t, w.Contains(day(2024, 1, 8).Add(-time.Nanosecond)))
	assert.False(t, w.Contains(day(2024, 1, 8)))
	assert.False(t, w.Contains(day(2024, 1, 1).Add(-time.Nanosecond)))
}

func TestBuildView_WeekScenario(t *testing.T) {
	memories := []model.Memory{
		{ID: "a", MemoryDate: "2024-01-01", Title: "Sledding"},
		{ID: "b", MemoryDate: "2024-01-01", Title: "Cocoa"},
		{ID: "c", MemoryDate: "2024-01-08", Title: "Back to school"},
	}
	v, err := BuildView(memories, Week, day(2024, 1, 3))
	require.NoError(t, err)

	assert.Equal(t, day(2024, 1, 1), v.Window.Start)
	assert.Equal(t, day(2024, 1, 8), v.Window.End)
	require.Len(t, v.Groups, 1)
	assert.Equal(t, "2024-01-01", v.Groups[0].Key)
	assert.Equal(t, "Jan 1, 2024", v.Groups[0].Label)
	assert.Equal(t, []string{"a", "b"}, ids(v.Groups[0].Items))
	assert.Equal(t, 2, v.Count())
	assert.Equal(t, "2 memories: Sledding and Cocoa.", BuildSummary(v.Items))
}

func TestBuildView_UndatedNeverAppears(t *testing.T) {
	memories := []model.Memory{
		{ID: "undated", Title: "No date at all"},
		{ID: "broken", MemoryDate: "sometime"},
		{ID: "dated", MemoryDate: "2024-05-05"},
	}
	anchors := []time.Time{day(2024, 5, 5), day(1970, 1, 1), day(1, 1, 1), day(2024, 12, 31)}
	for _, g := range Granularities() {
		for _, a := range anchors {
			v, err := BuildView(memories, g, a)
			require.NoError(t, err)
			for _, grp := range v.Groups {
				assert.NotContains(t, ids(grp.Items), "undated")
				assert.NotContains(t, ids(grp.Items), "broken")
			}
			assert.NotContains(t, ids(v.Items), "undated")
			assert.NotContains(t, ids(v.Items), "broken")
		}
	}
}

func TestBuildView_NoLossNoDuplication(t *testing.T) {
	var memories []model.Memory
	for i := 0; i < 60; i++ {
		d := day(2024, 1, 1).AddDate(0, 0, i*5)
		memories = append(memories, model.Memory{ID: fmt.Sprintf("m%02d", i), MemoryDate: d.Format("2006-01-02")})
	}
	for _, g := range Granularities() {
		v, err := BuildView(memories, g, day(2024, 3, 15))
		require.NoError(t, err)

		seen := map[string]int{}
		total := 0
		for _, grp := range v.Groups {
			for _, e := range grp.Items {
				seen[e.Memory.ID]++
				total++
			}
		}
		assert.Equal(t, len(v.Items), total, string(g))
		for _, e := range v.Items {
			assert.Equal(t, 1, seen[e.Memory.ID], "%s: %s", g, e.Memory.ID)
			assert.True(t, v.Window.Contains(e.EffectiveDate))
		}
		for _, m := range memories {
			e := derive.NewEntry(m, time.UTC)
			if v.Window.Contains(e.EffectiveDate) {
				assert.Equal(t, 1, seen[m.ID], "%s: in-window memory %s missing", g, m.ID)
			}
		}
	}
}

func TestBuildView_StableTieBreak(t *testing.T) {
	memories := []model.Memory{
		{ID: "first", MemoryDate: "2024-02-10"},
		{ID: "newer", CreatedAt: "2024-02-10T18:00:00Z"},
		{ID: "second", MemoryDate: "2024-02-10"},
		{ID: "third", EntryDate: "2024-02-10"},
		{ID: "older", MemoryDate: "2024-02-09"},
	}
	v, err := BuildView(memories, Month, day(2024, 2, 1))
	require.NoError(t, err)

	assert.Equal(t, []string{"newer", "first", "second", "third", "older"}, ids(v.Items))
	require.Len(t, v.Groups, 2)
	assert.Equal(t, []string{"newer", "first", "second", "third"}, ids(v.Groups[0].Items))
	assert.Equal(t, []string{"older"}, ids(v.Groups[1].Items))
}

func TestBuildView_YearBucketsByMonth(t *testing.T) {
	memories := []model.Memory{
		{ID: "jan1", MemoryDate: "2024-01-05"},
		{ID: "mar", MemoryDate: "2024-03-20"},
		{ID: "jan2", MemoryDate: "2024-01-25"},
		{ID: "other-year", MemoryDate: "2023-12-31"},
	}
	v, err := BuildView(memories, Year, day(2024, 6, 1))
	require.NoError(t, err)

	require.Len(t, v.Groups, 2)
	assert.Equal(t, "2024-03", v.Groups[0].Key)
	assert.Equal(t, "March", v.Groups[0].Label)
	assert.Equal(t, "2024-01", v.Groups[1].Key)
	assert.Equal(t, "January", v.Groups[1].Label)
	assert.Equal(t, []string{"jan2", "jan1"}, ids(v.Groups[1].Items))
	assert.Equal(t, "2024", v.Window.Label)
}

func TestBuildView_GroupsOrderedByNewestMember(t *testing.T) {
	memories := []model.Memory{
		{ID: "d1-morning", CreatedAt: "2024-04-01T08:00:00Z"},
		{ID: "d3", MemoryDate: "2024-04-03"},
		{ID: "d1-evening", CreatedAt: "2024-04-01T20:00:00Z"},
		{ID: "d2", MemoryDate: "2024-04-02"},
	}
	v, err := BuildView(memories, Week, day(2024, 4, 3))
	require.NoError(t, err)

	keys := make([]string, 0, len(v.Groups))
	for _, g := range v.Groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"2024-04-03", "2024-04-02", "2024-04-01"}, keys)
	assert.Equal(t, []string{"d1-evening", "d1-morning"}, ids(v.Groups[2].Items))
}

func TestBuildView_UsesAnchorLocationForDayKeys(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	memories := []model.Memory{{ID: "late", CreatedAt: "2024-01-01T20:00:00Z"}}

	v, err := BuildView(memories, Day, time.Date(2024, 1, 2, 0, 0, 0, 0, loc))
	require.NoError(t, err)
	require.Len(t, v.Groups, 1)
	assert.Equal(t, "2024-01-02", v.Groups[0].Key)
}

func TestBuildView_Idempotent(t *testing.T) {
	memories := []model.Memory{
		{ID: "a", MemoryDate: "2024-01-01", Title: "A"},
		{ID: "b", MemoryDate: "2024-01-02", Story: "B story. more"},
		{ID: "c", Location: "Paris", EntryDate: "2024-01-02"},
	}
	anchor := day(2024, 1, 2)
	for _, g := range Granularities() {
		v1, err := BuildView(memories, g, anchor)
		require.NoError(t, err)
		v2, err := BuildView(memories, g, anchor)
		require.NoError(t, err)
		assert.Equal(t, v1, v2)
		assert.Equal(t, BuildSummary(v1.Items), BuildSummary(v2.Items))
	}
}

func TestBuildView_EmptyInput(t *testing.T) {
	v, err := BuildView(nil, Month, day(2024, 1, 1))
	require.NoError(t, err)
	assert.Empty(t, v.Groups)
	assert.NotNil(t, v.Groups)
	assert.Empty(t, v.Items)
	assert.Equal(t, EmptySummary, BuildSummary(v.Items))
}

func entries(highlights ...string) []derive.Entry {
	out := make([]derive.Entry, 0, len(highlights))
	for _, h := range highlights {
		out = append(out, derive.Entry{Highlight: h})
	}
	return out
}

func TestBuildSummary(t *testing.T) {
	tests := []struct {
		name  string
		items []derive.Entry
		want  string
	}{
		{"empty", nil, "No memories yet for this period."},
		{"one", entries("X"), "1 memories: X."},
		{"two", entries("X", "Y"), "2 memories: X and Y."},
		{"three", entries("A", "B", "C"), "3 memories: A, B, and C."},
		{"five", entries("A", "B", "C", "D", "E"), "5 memories: A, B, and C and 2 more."},
		{"empty highlights dropped", entries("A", "", "B"), "3 memories: A and B."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSummary(tt.items))
		})
	}
}

func TestBuildSummary_UsesDerivedHighlights(t *testing.T) {
	memories := []model.Memory{
		{ID: "1", MemoryDate: "2024-01-03", Title: "Birthday"},
		{ID: "2", MemoryDate: "2024-01-02", MediaItems: []model.MediaItem{{Caption: "Cake"}}},
		{ID: "3", MemoryDate: "2024-01-01"},
	}
	v, err := BuildView(memories, Week, day(2024, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, "3 memories: Birthday, Cake, and Family moment.", BuildSummary(v.Items))
}

func TestSnapshotStats(t *testing.T) {
	memories := []model.Memory{
		{ID: "1", MemoryDate: "2024-01-03"},
		{ID: "2", CreatedAt: "2024-02-01T10:00:00Z"},
		{ID: "3"},
		{ID: "4", MemoryDate: "not a date"},
	}
	s := SnapshotStats(memories, time.UTC)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Undated)
	require.NotNil(t, s.Latest)
	assert.Equal(t, "Feb 1, 2024", s.LatestLabel)

	empty := SnapshotStats(nil, time.UTC)
	assert.Nil(t, empty.Latest)
	assert.Equal(t, "--", empty.LatestLabel)
}
