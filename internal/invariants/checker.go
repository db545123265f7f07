// Package invariants checks timeline invariants through the public HTTP API.
// It treats the service as a black box so the same checks run against an
// in-process router or a deployed instance.
package invariants

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// InvariantChecker runs invariant checks against a base URL.
type InvariantChecker struct {
	baseURL string
	client  *http.Client
}

func NewInvariantChecker(baseURL string) *InvariantChecker {
	return &InvariantChecker{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type timelineItem struct {
	Memory struct {
		ID string `json:"id"`
	} `json:"memory"`
	EffectiveDate time.Time `json:"effectiveDate"`
	Dated         bool      `json:"dated"`
}

type timelineGroup struct {
	Key   string         `json:"key"`
	Items []timelineItem `json:"items"`
}

type timelinePage struct {
	Label   string          `json:"label"`
	Start   time.Time       `json:"start"`
	End     time.Time       `json:"end"`
	Summary string          `json:"summary"`
	Count   int             `json:"count"`
	Groups  []timelineGroup `json:"groups"`
}

func (p timelinePage) ids() []string {
	var out []string
	for _, g := range p.Groups {
		for _, it := range g.Items {
			out = append(out, it.Memory.ID)
		}
	}
	return out
}

// Timeline fetches one page and fails the test on any non-200 answer.
func (ic *InvariantChecker) Timeline(t *testing.T, view, date string) timelinePage {
	t.Helper()
	body := ic.makeRequest(t, http.MethodGet, fmt.Sprintf("/api/timeline?view=%s&date=%s", view, date), nil, http.StatusOK)
	var page timelinePage
	require.NoError(t, json.Unmarshal(body, &page))
	return page
}

// INVARIANT: month windows partition their year; nothing is lost or duplicated.
func (ic *InvariantChecker) CheckYearPartition(t *testing.T, year int) {
	t.Helper()
	yearPage := ic.Timeline(t, "year", fmt.Sprintf("%04d-01-01", year))

	seen := map[string]int{}
	total := 0
	for m := 1; m <= 12; m++ {
		page := ic.Timeline(t, "month", fmt.Sprintf("%04d-%02d-01", year, m))
		total += page.Count
		for _, id := range page.ids() {
			seen[id]++
		}
	}
	assert.Equal(t, yearPage.Count, total, "month counts must add up to the year count")
	for id, n := range seen {
		assert.Equal(t, 1, n, "memory %s appears in %d months", id, n)
	}
	yearIDs := yearPage.ids()
	sort.Strings(yearIDs)
	monthIDs := make([]string, 0, len(seen))
	for id := range seen {
		monthIDs = append(monthIDs, id)
	}
	sort.Strings(monthIDs)
	assert.Equal(t, yearIDs, monthIDs)
}

// INVARIANT: every item lies inside the window, groups and items run newest first.
func (ic *InvariantChecker) CheckOrderingAndContainment(t *testing.T, view, date string) {
	t.Helper()
	page := ic.Timeline(t, view, date)

	var prevGroupNewest time.Time
	for gi, g := range page.Groups {
		require.NotEmpty(t, g.Items, "group %s is empty", g.Key)
		for i, it := range g.Items {
			assert.True(t, it.Dated, "undated memory %s in a window", it.Memory.ID)
			assert.False(t, it.EffectiveDate.Before(page.Start), "%s before window start", it.Memory.ID)
			assert.True(t, it.EffectiveDate.Before(page.End), "%s after window end", it.Memory.ID)
			if i > 0 {
				assert.False(t, it.EffectiveDate.After(g.Items[i-1].EffectiveDate), "group %s not newest first", g.Key)
			}
		}
		if gi > 0 {
			assert.False(t, g.Items[0].EffectiveDate.After(prevGroupNewest), "group %s out of order", g.Key)
		}
		prevGroupNewest = g.Items[0].EffectiveDate
	}
}

// INVARIANT: a memory without a usable date is stored and retrievable but never
// shown in a windowed view.
func (ic *InvariantChecker) CheckUndatedHidden(t *testing.T, id string, years ...int) {
	t.Helper()
	ic.makeRequest(t, http.MethodGet, "/api/memories/"+id, nil, http.StatusOK)
	for _, y := range years {
		page := ic.Timeline(t, "year", fmt.Sprintf("%04d-06-15", y))
		assert.NotContains(t, page.ids(), id, "undated memory shown in %d", y)
	}
}

// INVARIANT: rendering the same snapshot twice gives the same page.
func (ic *InvariantChecker) CheckIdempotent(t *testing.T, view, date string) {
	t.Helper()
	first := ic.Timeline(t, view, date)
	second := ic.Timeline(t, view, date)
	assert.Equal(t, first, second)
}

func (ic *InvariantChecker) makeRequest(t *testing.T, method, path string, body interface{}, wantStatus int) []byte {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ic.baseURL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ic.client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, "%s %s: %s", method, path, string(data))
	return data
}

// CreateMemory posts a memory and returns its id.
func (ic *InvariantChecker) CreateMemory(t *testing.T, payload map[string]interface{}) string {
	t.Helper()
	data := ic.makeRequest(t, http.MethodPost, "/api/memories", payload, http.StatusCreated)
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotEmpty(t, out.ID)
	return out.ID
}
