package store

import (
	"context"

	"github.com/familylane/memory-lane/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (sqlite, postgres).
type Store interface {
	Memories() Memories
	Close() error
}

// Memories is the record store the timeline reads its snapshot from.
//
// List returns every memory ordered by memory date then creation time, newest
// first. Callers must not rely on that order: the timeline re-sorts locally.
type Memories interface {
	List(ctx context.Context) ([]*model.Memory, error)
	GetByID(ctx context.Context, id string) (*model.Memory, error)
	Create(ctx context.Context, m *model.Memory) (*model.Memory, error)
	Update(ctx context.Context, id string, m *model.Memory) (*model.Memory, error)
	Delete(ctx context.Context, id string) error
}
