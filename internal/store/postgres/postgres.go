package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"

	"github.com/familylane/memory-lane/internal/model"
	"github.com/familylane/memory-lane/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and retries
// the first ping with exponential backoff until ctx expires.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 5 * time.Second
	ping := func() error { return db.PingContext(ctx) }
	if err := backoff.Retry(ping, backoff.WithContext(exp, ctx)); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

// EnsureSchema creates the memories table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS memories (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL DEFAULT '',
            story TEXT NOT NULL DEFAULT '',
            location TEXT NOT NULL DEFAULT '',
            tags JSONB NOT NULL DEFAULT '[]'::jsonb,
            memory_date TEXT,
            entry_date TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            media_url TEXT NOT NULL DEFAULT '',
            media_type TEXT NOT NULL DEFAULT '',
            media_caption TEXT NOT NULL DEFAULT '',
            media_items JSONB NOT NULL DEFAULT '[]'::jsonb,
            owner_email TEXT NOT NULL DEFAULT ''
        )`)
	return errors.Wrap(err, "ensure postgres schema")
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Memories() store.Memories { return &memories{db: s.db} }

func (s *pgStore) Close() error { return s.db.Close() }

// HealthPing implements health.HealthPinger for Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const selectColumns = `id, title, story, location, tags::text, memory_date, entry_date, created_at,
        media_url, media_type, media_caption, media_items::text, owner_email`

type memories struct{ db *sql.DB }

func (r *memories) List(ctx context.Context) ([]*model.Memory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM memories
        ORDER BY memory_date DESC NULLS LAST, created_at DESC`)
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
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM memories WHERE id=$1`, id)
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
	tags, err := store.EncodeTags(out.Tags)
	if err != nil {
		return nil, err
	}
	media, err := store.EncodeMedia(out.MediaItems)
	if err != nil {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO memories (id, title, story, location, tags, memory_date, entry_date, created_at,
            media_url, media_type, media_caption, media_items, owner_email)
        VALUES ($1,$2,$3,$4,$5::jsonb,$6,$7,$8,$9,$10,$11,$12::jsonb,$13)
    `, out.ID, out.Title, out.Story, out.Location, tags,
		store.NullableString(out.MemoryDate), store.NullableString(out.EntryDate), created,
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
	res, err := r.db.ExecContext(ctx, `
        UPDATE memories SET title=$2, story=$3, location=$4, tags=$5::jsonb, memory_date=$6, entry_date=$7,
            media_url=$8, media_type=$9, media_caption=$10, media_items=$11::jsonb, owner_email=$12
        WHERE id=$1
    `, id, m.Title, m.Story, m.Location, tags,
		store.NullableString(m.MemoryDate), store.NullableString(m.EntryDate),
		m.MediaURL, m.MediaType, m.MediaCaption, media, m.OwnerEmail)
	if err != nil {
		return nil, errors.Wrap(err, "update memory")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, store.NotFound(id)
	}
	return r.GetByID(ctx, id)
}

func (r *memories) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memories WHERE id=$1`, id)
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
		created             time.Time
	)
	err := row.Scan(&m.ID, &m.Title, &m.Story, &m.Location, &tags, &memoryDate, &entryDt, &created,
		&m.MediaURL, &m.MediaType, &m.MediaCaption, &media, &m.OwnerEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "scan memory")
	}
	m.MemoryDate = memoryDate.String
	m.EntryDate = entryDt.String
	m.CreatedAt = created.UTC().Format(time.RFC3339Nano)
	if m.Tags, err = store.DecodeTags(tags); err != nil {
		return nil, err
	}
	if m.MediaItems, err = store.DecodeMedia(media); err != nil {
		return nil, err
	}
	return &m, nil
}
