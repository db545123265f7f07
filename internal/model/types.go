package model

import "strings"

// MediaItem is one photo or video attached to a memory.
type MediaItem struct {
	URL     string `json:"url"`
	Type    string `json:"type"`
	Caption string `json:"caption"`
}

// IsVideo reports whether the item carries a video MIME type.
func (m MediaItem) IsVideo() bool {
	return strings.HasPrefix(m.Type, "video")
}

// Memory is a family memory as stored by the record store.
//
// Dates stay as strings at this boundary: MemoryDate and EntryDate are
// YYYY-MM-DD values typed by a person, CreatedAt is an RFC3339 timestamp set
// by the store. Empty means absent.
type Memory struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Story      string      `json:"story"`
	Location   string      `json:"location"`
	Tags       []string    `json:"tags"`
	MemoryDate string      `json:"memoryDate,omitempty"`
	EntryDate  string      `json:"entryDate,omitempty"`
	CreatedAt  string      `json:"createdAt,omitempty"`
	MediaItems []MediaItem `json:"mediaItems"`

	// Legacy single-media fields. Older records only carry these; newer
	// records mirror their first media item here.
	MediaURL     string `json:"mediaUrl,omitempty"`
	MediaType    string `json:"mediaType,omitempty"`
	MediaCaption string `json:"mediaCaption,omitempty"`

	OwnerEmail string `json:"ownerEmail"`
}

// MediaUpload describes a file the presentation layer already uploaded and
// wants attached to a memory being saved.
type MediaUpload struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	FileName string `json:"fileName,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// SaveMemoryRequest carries the fields of the add/edit memory form.
type SaveMemoryRequest struct {
	Title      string        `json:"title"`
	Story      string        `json:"story"`
	Location   string        `json:"location"`
	Tags       []string      `json:"tags"`
	MemoryDate string        `json:"memoryDate,omitempty"`
	EntryDate  string        `json:"entryDate,omitempty"`
	OwnerEmail string        `json:"ownerEmail"`
	Captions   string        `json:"captions,omitempty"`
	Media      []MediaUpload `json:"media,omitempty"`
}
