package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familylane/memory-lane/internal/model"
	"github.com/familylane/memory-lane/internal/store"
	"github.com/familylane/memory-lane/internal/store/sqlite"
)

// listOnlyStore has no HealthPing, so the checker falls back to List.
type listOnlyStore struct{ err error }

func (s listOnlyStore) Memories() store.Memories { return listOnlyMemories(s) }
func (s listOnlyStore) Close() error             { return nil }

type listOnlyMemories struct{ err error }

func (m listOnlyMemories) List(context.Context) ([]*model.Memory, error) { return nil, m.err }
func (m listOnlyMemories) GetByID(context.Context, string) (*model.Memory, error) {
	return nil, model.ErrNotFound
}
func (m listOnlyMemories) Create(context.Context, *model.Memory) (*model.Memory, error) {
	return nil, m.err
}
func (m listOnlyMemories) Update(context.Context, string, *model.Memory) (*model.Memory, error) {
	return nil, m.err
}
func (m listOnlyMemories) Delete(context.Context, string) error { return m.err }

func TestStoreHealthChecker_PingsSQLite(t *testing.T) {
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	hc := store.NewStoreHealthChecker(s, zerolog.Nop(), time.Second)
	assert.Equal(t, "store", hc.Name())
	assert.False(t, hc.IsHealthy(), "unhealthy until first probe")
	assert.True(t, hc.Check(context.Background()))
	assert.True(t, hc.IsHealthy())
}

func TestStoreHealthChecker_ClosedStoreGoesDown(t *testing.T) {
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)

	hc := store.NewStoreHealthChecker(s, zerolog.Nop(), time.Second)
	require.True(t, hc.Check(context.Background()))
	require.NoError(t, s.Close())
	assert.False(t, hc.Check(context.Background()))
	assert.False(t, hc.IsHealthy())
}

func TestStoreHealthChecker_ListFallback(t *testing.T) {
	ok := store.NewStoreHealthChecker(listOnlyStore{}, zerolog.Nop(), 0)
	assert.True(t, ok.Check(context.Background()))

	bad := store.NewStoreHealthChecker(listOnlyStore{err: errors.New("disk gone")}, zerolog.Nop(), 0)
	assert.False(t, bad.Check(context.Background()))
}
