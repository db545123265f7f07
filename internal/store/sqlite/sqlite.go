package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/familylane/memory-lane/internal/model"
	"github.com/familylane/memory-lane/internal/store"
)

// New opens the SQLite database at path and returns a store backed by it.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wraps an existing connection whose schema is already applied.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Memories() store.Memories { return &memories{db: s.db} }

func (s *sqliteStore) Close() error { return s.db.Close() }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const selectColumns = `id, title, story, location, tags, memory_date, entry_date, created_at,
        media_url, media_type, media_caption, media_items, owner_email`

type memories struct{ db *sql.DB }

func (r *memories) List(ctx context.Context) ([]*model.Memory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM memories
        ORDER BY memory_date DESC, created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list memories")
	}
	defer func() { _ = rows.Close() }()

	out := []*model.Memory{}
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, errors.Wrap(rows.Err(), "list memories")
}

func (r *memories) GetByID(ctx context.Context, id string) (*model.Memory, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM memories WHERE id = ?`, id)
	m, err := scanMemory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NotFound(id)
	}
	return m, err
}

func (r *memories) Create(ctx context.Context, m *model.Memory) (*model.Memory, error) {
	out := *m
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	created, err := store.CreatedAt(out.CreatedAt, time.Now())
	if err != nil {
		return nil, err
	}
	out.CreatedAt = created.Format(time.RFC3339Nano)
	tags, err := store.EncodeTags(out.Tags)
	if err != nil {
		return nil, err
	}
	media, err := store.EncodeMedia(out.MediaItems)
	if err != nil {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO memories (
        id, title, story, location, tags, memory_date, entry_date, created_at,
        media_url, media_type, media_caption, media_items, owner_email)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		out.ID, out.Title, out.Story, out.Location, tags,
		store.NullableString(out.MemoryDate), store.NullableString(out.EntryDate), out.CreatedAt,
		out.MediaURL, out.MediaType, out.MediaCaption, media, out.OwnerEmail)
	if err != nil {
		return nil, errors.Wrap(err, "insert memory")
	}
	return r.GetByID(ctx, out.ID)
}

func (r *memories) Update(ctx context.Context, id string, m *model.Memory) (*model.Memory, error) {
	tags, err := store.EncodeTags(m.Tags)
	if err != nil {
		return nil, err
	}
	media, err := store.EncodeMedia(m.MediaItems)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE memories SET
        title = ?, story = ?, location = ?, tags = ?, memory_date = ?, entry_date = ?,
        media_url = ?, media_type = ?, media_caption = ?, media_items = ?, owner_email = ?
        WHERE id = ?`,
		m.Title, m.Story, m.Location, tags,
		store.NullableString(m.MemoryDate), store.NullableString(m.EntryDate),
		m.MediaURL, m.MediaType, m.MediaCaption, media, m.OwnerEmail, id)
	if err != nil {
		return nil, errors.Wrap(err, "update memory")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, store.NotFound(id)
	}
	return r.GetByID(ctx, id)
}

func (r *memories) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete memory")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.NotFound(id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMemory(row scanner) (*model.Memory, error) {
	var (
		m                   model.Memory
		tags, media         sql.NullString
		memoryDate, entryDt sql.NullString
	)
	err := row.Scan(&m.ID, &m.Title, &m.Story, &m.Location, &tags, &memoryDate, &entryDt, &m.CreatedAt,
		&m.MediaURL, &m.MediaType, &m.MediaCaption, &media, &m.OwnerEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "scan memory")
	}
	m.MemoryDate = memoryDate.String
	m.EntryDate = entryDt.String
	if m.Tags, err = store.DecodeTags(tags); err != nil {
		return nil, err
	}
	if m.MediaItems, err = store.DecodeMedia(media); err != nil {
		return nil, err
	}
	return &m, nil
}
