package localstate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDir_Override(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(envHome, tmp)

	dir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, tmp, dir)
}

func TestDataDir_DefaultUnderHome(t *testing.T) {
	t.Setenv(envHome, "")
	t.Setenv("HOME", "/home/lane")

	dir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/lane", dirName), dir)
}

func TestDBPath(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(envHome, tmp)

	p, err := DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, dbFilename), p)
}
