package store

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/familylane/memory-lane/internal/calendar"
	"github.com/familylane/memory-lane/internal/model"
)

// Row encoding shared by the SQL drivers. Tags and media items are stored as
// JSON text; absent dates are stored as NULL.

// EncodeTags returns the JSON column value for tags.
func EncodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", errors.Wrap(err, "encode tags")
	}
	return string(b), nil
}

// DecodeTags parses the JSON tags column.
func DecodeTags(raw sql.NullString) ([]string, error) {
	out := []string{}
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, errors.Wrap(err, "decode tags")
	}
	return out, nil
}

// EncodeMedia returns the JSON column value for media items.
func EncodeMedia(items []model.MediaItem) (string, error) {
	if items == nil {
		items = []model.MediaItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", errors.Wrap(err, "encode media items")
	}
	return string(b), nil
}

// DecodeMedia parses the JSON media items column.
func DecodeMedia(raw sql.NullString) ([]model.MediaItem, error) {
	out := []model.MediaItem{}
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, errors.Wrap(err, "decode media items")
	}
	return out, nil
}

// NullableString maps blank strings to NULL.
func NullableString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// NotFound wraps model.ErrNotFound with the missing memory id.
func NotFound(id string) error {
	return errors.Wrapf(model.ErrNotFound, "memory %s", id)
}

// CreatedAt resolves the creation instant for an insert. Blank means now;
// anything else must parse as a timestamp, zone-less values being UTC.
// Both drivers store the result and read it back as UTC RFC3339Nano.
func CreatedAt(raw string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return now.UTC(), nil
	}
	t, err := calendar.ParseTimestamp(raw, time.UTC)
	if err != nil {
		return time.Time{}, model.NewValidationError("createdAt", "must be an ISO-8601 timestamp")
	}
	return t.UTC(), nil
}
