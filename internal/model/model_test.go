package model

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidationError_Classification(t *testing.T) {
	err := fmt.Errorf("save: %w", NewValidationError("memoryDate", "must be YYYY-MM-DD"))

	assert.True(t, IsValidationError(err))
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "save: validation failed for memoryDate: must be YYYY-MM-DD", err.Error())
}

func TestIsNotFound_Wrapped(t *testing.T) {
	err := errors.Wrap(ErrNotFound, "memory abc")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidationError(err))
}

func TestMediaItem_IsVideo(t *testing.T) {
	assert.True(t, MediaItem{Type: "video/mp4"}.IsVideo())
	assert.False(t, MediaItem{Type: "image/jpeg"}.IsVideo())
	assert.False(t, MediaItem{}.IsVideo())
}
