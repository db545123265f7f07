// Package localstate locates the on-disk home of a single-machine install.
package localstate

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	envHome    = "MEMORY_LANE_HOME" // override for tests and packaging
	dirName    = ".memory-lane"     // default under $HOME
	dbFilename = "memory-lane.db"
)

// DataDir returns the directory holding local state (~/.memory-lane).
// The SQLite adapter creates it on first open.
func DataDir() (string, error) {
	if custom := os.Getenv(envHome); custom != "" {
		return custom, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DBPath returns the path of the default SQLite database file.
func DBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFilename), nil
}
