package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familylane/memory-lane/internal/model"
	"github.com/familylane/memory-lane/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()
	mems := s.Memories()

	// Create with generated id and creation time
	created, err := mems.Create(ctx, &model.Memory{
		Title:      "First snow",
		Story:      "Everyone ran outside.",
		Location:   "Oslo",
		Tags:       []string{"winter", "kids"},
		MemoryDate: "2024-01-01",
		MediaItems: []model.MediaItem{{URL: "https://cdn/1.jpg", Type: "image/jpeg", Caption: "Snow"}},
		MediaURL:   "https://cdn/1.jpg",
		MediaType:  "image/jpeg",
		OwnerEmail: "mum@example.test",
	})
	require.NoError(t, err, "Create")
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, []string{"winter", "kids"}, created.Tags)
	assert.Equal(t, "2024-01-01", created.MemoryDate)
	assert.Empty(t, created.EntryDate)
	require.Len(t, created.MediaItems, 1)
	assert.Equal(t, "Snow", created.MediaItems[0].Caption)

	// Legacy-only and undated records round-trip untouched
	legacy, err := mems.Create(ctx, &model.Memory{MediaURL: "https://cdn/old.jpg", MediaCaption: "Old photo", CreatedAt: "2020-05-01T10:00:00Z"})
	require.NoError(t, err, "Create legacy")
	assert.Empty(t, legacy.MediaItems)
	assert.Equal(t, "Old photo", legacy.MediaCaption)
	assert.Equal(t, "2020-05-01T10:00:00Z", legacy.CreatedAt)

	malformed, err := mems.Create(ctx, &model.Memory{Title: "Typo", MemoryDate: "2024-13-45"})
	require.NoError(t, err, "Create malformed date")
	assert.Equal(t, "2024-13-45", malformed.MemoryDate)

	// GetByID
	got, err := mems.GetByID(ctx, created.ID)
	require.NoError(t, err, "GetByID")
	assert.Equal(t, created, got)

	// List
	lst, err := mems.List(ctx)
	require.NoError(t, err, "List")
	assert.Len(t, lst, 3)

	// Update keeps id and creation time
	upd := *got
	upd.Title = "First snow of the year"
	upd.EntryDate = "2024-01-02"
	upd.Tags = nil
	updated, err := mems.Update(ctx, created.ID, &upd)
	require.NoError(t, err, "Update")
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "First snow of the year", updated.Title)
	assert.Equal(t, "2024-01-02", updated.EntryDate)
	assert.Equal(t, []string{}, updated.Tags)

	// Missing ids map to model.ErrNotFound
	_, err = mems.GetByID(ctx, "does-not-exist")
	assert.True(t, model.IsNotFound(err), "GetByID missing: %v", err)
	_, err = mems.Update(ctx, "does-not-exist", &upd)
	assert.True(t, model.IsNotFound(err), "Update missing: %v", err)
	assert.True(t, model.IsNotFound(mems.Delete(ctx, "does-not-exist")))

	// Delete
	require.NoError(t, mems.Delete(ctx, created.ID), "Delete")
	_, err = mems.GetByID(ctx, created.ID)
	assert.True(t, model.IsNotFound(err))
	lst, err = mems.List(ctx)
	require.NoError(t, err)
	assert.Len(t, lst, 2)

	// Caller-supplied creation times are normalised to UTC the same way by every driver
	for in, want := range map[string]string{
		"2021-06-01T12:00:00+02:00": "2021-06-01T10:00:00Z",
		"2021-06-01T12:00:00":       "2021-06-01T12:00:00Z",
		"2021-06-01":                "2021-06-01T00:00:00Z",
	} {
		m, err := mems.Create(ctx, &model.Memory{Title: "Dated " + in, CreatedAt: in})
		require.NoError(t, err, "Create with createdAt %q", in)
		assert.Equal(t, want, m.CreatedAt, in)
		require.NoError(t, mems.Delete(ctx, m.ID))
	}

	_, err = mems.Create(ctx, &model.Memory{Title: "Bad clock", CreatedAt: "half past nine"})
	assert.True(t, model.IsValidationError(err), "Create with bad createdAt: %v", err)
	lst, err = mems.List(ctx)
	require.NoError(t, err)
	assert.Len(t, lst, 2)
}
