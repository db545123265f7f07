package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &payload))
	return payload
}

func TestLogger_IncludesStackAndServiceOnError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("memory-lane", &buf)
	log.Error().Stack().Err(errors.New("boom")).Msg("something failed")

	payload := lastLine(t, &buf)
	assert.Equal(t, "memory-lane", payload["service"])
	assert.Equal(t, "error", payload["level"])
	assert.Equal(t, "boom", payload["error"])
	assert.Contains(t, payload, "stack")
	assert.Contains(t, payload, "time")
}

func TestLogger_KeepsWrappedStack(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("memory-lane", &buf)
	log.Error().Stack().Err(pkgerrors.Wrap(errors.New("disk"), "list memories")).Msg("store failed")

	payload := lastLine(t, &buf)
	assert.Equal(t, "list memories: disk", payload["error"])
	stack, ok := payload["stack"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, stack)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("shouting"))
}
