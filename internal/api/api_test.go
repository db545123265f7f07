package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familylane/memory-lane/internal/health"
	"github.com/familylane/memory-lane/internal/model"
	"github.com/familylane/memory-lane/internal/services"
	"github.com/familylane/memory-lane/internal/store"
	"github.com/familylane/memory-lane/internal/store/sqlite"
)

type fakeHealth struct{ healthy bool }

func (f fakeHealth) IsHealthy() bool { return f.healthy }
func (f fakeHealth) Components() []health.ComponentStatus {
	return []health.ComponentStatus{{Name: "store", Healthy: f.healthy}}
}

type testAPI struct {
	server *httptest.Server
	store  store.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	svc := services.NewMemoryService(st, time.UTC, zerolog.Nop())
	srv := httptest.NewServer(NewRouter(svc, fakeHealth{healthy: true}, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return &testAPI{server: srv, store: st}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, a.server.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (a *testAPI) seed(t *testing.T, memories ...model.Memory) {
	t.Helper()
	for _, m := range memories {
		m := m
		_, err := a.store.Memories().Create(context.Background(), &m)
		require.NoError(t, err)
	}
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)
	resp := a.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status     string                   `json:"status"`
		Components []health.ComponentStatus `json:"components"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, []health.ComponentStatus{{Name: "store", Healthy: true}}, body.Components)
}

func TestHealth_NoChecker(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthHandler(nil).CheckHealth(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"unhealthy"`)
}

func TestTimeline_Week(t *testing.T) {
	a := newTestAPI(t)
	a.seed(t,
		model.Memory{ID: "a", Title: "Sledding", MemoryDate: "2024-01-02"},
		model.Memory{ID: "b", Title: "Cocoa", MemoryDate: "2024-01-02"},
		model.Memory{ID: "c", Title: "Later", MemoryDate: "2024-01-08"},
		model.Memory{ID: "d", Title: "Broken", MemoryDate: "not a date"},
	)

	resp := a.do(t, http.MethodGet, "/api/timeline?view=week&date=2024-01-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body TimelineResponse
	decode(t, resp, &body)
	assert.Equal(t, "week", string(body.View))
	assert.Equal(t, "2024-01-03", body.Date)
	assert.Equal(t, "Jan 1, 2024 - Jan 7, 2024", body.Label)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Groups, 1)
	assert.Equal(t, "Jan 2, 2024", body.Groups[0].Label)
	require.Len(t, body.Groups[0].Items, 2)
	ids := []string{body.Groups[0].Items[0].Memory.ID, body.Groups[0].Items[1].Memory.ID}
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
	assert.True(t, strings.HasPrefix(body.Summary, "2 memories: "))
}

func TestTimeline_EmptyDay(t *testing.T) {
	a := newTestAPI(t)
	resp := a.do(t, http.MethodGet, "/api/timeline?date=1999-12-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body TimelineResponse
	decode(t, resp, &body)
	assert.Equal(t, "day", string(body.View))
	assert.Equal(t, "Dec 31, 1999", body.Label)
	assert.Equal(t, "No memories yet for this period.", body.Summary)
	assert.NotNil(t, body.Groups)
	assert.Empty(t, body.Groups)
}

func TestTimeline_BadInput(t *testing.T) {
	a := newTestAPI(t)
	for _, q := range []string{"view=fortnight", "view=day&date=2024-02-30", "date=tomorrow"} {
		resp := a.do(t, http.MethodGet, "/api/timeline?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestStats(t *testing.T) {
	a := newTestAPI(t)
	a.seed(t,
		model.Memory{Title: "A", MemoryDate: "2023-06-01"},
		model.Memory{Title: "B", EntryDate: "2024-02-10"},
		model.Memory{Title: "C", MemoryDate: "bogus"},
	)

	resp := a.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Total       int    `json:"total"`
		Undated     int    `json:"undated"`
		LatestLabel string `json:"latestLabel"`
	}
	decode(t, resp, &body)
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 1, body.Undated)
	assert.Equal(t, "Feb 10, 2024", body.LatestLabel)
}

func TestMemoriesCRUD(t *testing.T) {
	a := newTestAPI(t)

	// Create
	resp := a.do(t, http.MethodPost, "/api/memories", map[string]interface{}{
		"title":      "Pancakes",
		"memoryDate": "2024-03-10",
		"tags":       []string{"breakfast"},
		"media":      []map[string]string{{"url": "https://cdn/p.jpg", "type": "image/jpeg", "fileName": "p.jpg"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created model.Memory
	decode(t, resp, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Pancakes", created.MediaCaption)

	// Get
	resp = a.do(t, http.MethodGet, "/api/memories/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Update
	resp = a.do(t, http.MethodPut, "/api/memories/"+created.ID, map[string]interface{}{
		"title":      "Sunday pancakes",
		"memoryDate": "2024-03-10",
		"captions":   "Stack of five",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated model.Memory
	decode(t, resp, &updated)
	assert.Equal(t, "Sunday pancakes", updated.Title)
	assert.Equal(t, "Stack of five", updated.MediaItems[0].Caption)

	// List includes undated records
	a.seed(t, model.Memory{Title: "Mystery"})
	resp = a.do(t, http.MethodGet, "/api/memories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Count int `json:"count"`
	}
	decode(t, resp, &list)
	assert.Equal(t, 2, list.Count)

	// Delete
	resp = a.do(t, http.MethodDelete, "/api/memories/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = a.do(t, http.MethodGet, "/api/memories/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = a.do(t, http.MethodDelete, "/api/memories/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMemories_InvalidInput(t *testing.T) {
	a := newTestAPI(t)

	cases := []struct {
		name string
		body interface{}
	}{
		{"unknown field", map[string]interface{}{"colour": "red"}},
		{"bad date", map[string]interface{}{"memoryDate": "2024-13-45"}},
		{"media without url", map[string]interface{}{"media": []map[string]string{{"type": "image/png"}}}},
		{"bad owner", map[string]interface{}{"ownerEmail": "not-an-email"}},
	}
	for _, tc := range cases {
		resp := a.do(t, http.MethodPost, "/api/memories", tc.body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, tc.name)
	}

	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/api/memories", strings.NewReader("{not json"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodPut, "/api/memories/missing", map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestAPI(t)
	_ = a.do(t, http.MethodGet, "/api/timeline?view=month&date=2024-01-01", nil)

	resp := a.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	assert.Contains(t, buf.String(), "memory_lane_timeline_views_total")
}
