package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/familylane/memory-lane/internal/calendar"
	"github.com/familylane/memory-lane/internal/derive"
	"github.com/familylane/memory-lane/internal/model"
)

// Group is one sub-period bucket of a view.
type Group struct {
	Key   string         `json:"key"`
	Label string         `json:"label"`
	Items []derive.Entry `json:"items"`
}

// View is the grouped timeline for one window. Items is the flat filtered
// list, newest first, that the summary is built from.
type View struct {
	Granularity Granularity    `json:"granularity"`
	Window      Window         `json:"window"`
	Groups      []Group        `json:"groups"`
	Items       []derive.Entry `json:"items"`
}

// Count is the number of memories inside the window.
func (v View) Count() int { return len(v.Items) }

// BuildView enriches memories in anchor's location and groups the ones that
// fall inside the window of g around anchor. Undated memories never appear.
func BuildView(memories []model.Memory, g Granularity, anchor time.Time) (View, error) {
	if !g.IsValid() {
		return View{}, fmt.Errorf("%w: %q", ErrInvalidGranularity, string(g))
	}
	return BuildViewFromEntries(derive.Enrich(memories, anchor.Location()), g, anchor)
}

// BuildViewFromEntries is BuildView for a snapshot that was already enriched.
func BuildViewFromEntries(entries []derive.Entry, g Granularity, anchor time.Time) (View, error) {
	w, err := ResolveRange(g, anchor)
	if err != nil {
		return View{}, err
	}

	items := make([]derive.Entry, 0)
	for _, e := range entries {
		if e.Dated && w.Contains(e.EffectiveDate) {
			items = append(items, e)
		}
	}
	sortNewestFirst(items)

	return View{
		Granularity: g,
		Window:      w,
		Groups:      group(items, g, anchor.Location()),
		Items:       items,
	}, nil
}

func group(items []derive.Entry, g Granularity, loc *time.Location) []Group {
	groups := make([]Group, 0)
	index := make(map[string]int)
	for _, e := range items {
		key, label := bucket(e.EffectiveDate.In(loc), g)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Label: label})
		}
		groups[i].Items = append(groups[i].Items, e)
	}
	for i := range groups {
		sortNewestFirst(groups[i].Items)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Items[0].EffectiveDate.After(groups[j].Items[0].EffectiveDate)
	})
	return groups
}

func bucket(t time.Time, g Granularity) (key, label string) {
	if g == Year {
		return t.Format("2006-01"), calendar.FormatMonth(t)
	}
	return calendar.LocalDateKey(t), calendar.FormatDate(t)
}

func sortNewestFirst(items []derive.Entry) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].EffectiveDate.After(items[j].EffectiveDate)
	})
}
