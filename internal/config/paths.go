// Package config resolves where dtf keeps its data and loads user settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvDTFHome overrides the data directory when set.
	EnvDTFHome = "DTF_HOME"
	// EnvDTFDB overrides the history database path when set.
	EnvDTFDB = "DTF_DB"
)

// DataDir returns the directory used to store dtf data.
func DataDir() (string, error) {
	if d := os.Getenv(EnvDTFHome); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dtf"), nil
}

// EnsureDataDir returns DataDir after creating it if needed.
func EnsureDataDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return d, nil
}

// DBPath returns the full path to the SQLite history database.
func DBPath() (string, error) {
	if p := os.Getenv(EnvDTFDB); p != "" {
		return p, nil
	}
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "dtf.db"), nil
}

// SettingsPath returns the path of the optional settings file.
func SettingsPath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "settings.yaml"), nil
}
