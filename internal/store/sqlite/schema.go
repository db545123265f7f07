package sqlite

import (
	"database/sql"

	"github.com/pkg/errors"
)

// EnsureSchema creates the memories table if it does not exist.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS memories (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL DEFAULT '',
            story TEXT NOT NULL DEFAULT '',
            location TEXT NOT NULL DEFAULT '',
            tags TEXT NOT NULL DEFAULT '[]',
            memory_date TEXT,
            entry_date TEXT,
            created_at TEXT NOT NULL,
            media_url TEXT NOT NULL DEFAULT '',
            media_type TEXT NOT NULL DEFAULT '',
            media_caption TEXT NOT NULL DEFAULT '',
            media_items TEXT NOT NULL DEFAULT '[]',
            owner_email TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE INDEX IF NOT EXISTS memories_memory_date_idx ON memories(memory_date DESC, created_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "ensure sqlite schema")
		}
	}
	return nil
}
