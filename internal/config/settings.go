package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxColumnWidth caps table cells when no setting overrides it.
const DefaultMaxColumnWidth = 80

// Settings are user defaults read from settings.yaml. Command line flags take
// precedence over every field.
type Settings struct {
	ArraySameOrder bool   `yaml:"array_same_order"`
	MaxColumnWidth int    `yaml:"max_column_width"`
	Color          *bool  `yaml:"color,omitempty"`
	History        *bool  `yaml:"history,omitempty"`
	HistoryLimit   int    `yaml:"history_limit"`
	LogLevel       string `yaml:"log_level"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		MaxColumnWidth: DefaultMaxColumnWidth,
		HistoryLimit:   200,
		LogLevel:       "warn",
	}
}

// ColorEnabled reports whether colour output is allowed by the settings.
func (s Settings) ColorEnabled() bool { return s.Color == nil || *s.Color }

// HistoryEnabled reports whether fresh checks are recorded.
func (s Settings) HistoryEnabled() bool { return s.History == nil || *s.History }

// LoadSettings reads settings.yaml from the data directory. A missing file
// yields the defaults.
func LoadSettings() (Settings, error) {
	p, err := SettingsPath()
	if err != nil {
		return DefaultSettings(), err
	}
	return LoadSettingsFile(p)
}

// LoadSettingsFile reads settings from path, filling unset fields with defaults.
func LoadSettingsFile(path string) (Settings, error) {
	s := DefaultSettings()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	if s.MaxColumnWidth <= 0 {
		s.MaxColumnWidth = DefaultMaxColumnWidth
	}
	if s.HistoryLimit < 0 {
		s.HistoryLimit = 0
	}
	if s.LogLevel == "" {
		s.LogLevel = "warn"
	}
	return s, nil
}

// SaveSettings writes s to settings.yaml, creating the data directory.
func SaveSettings(s Settings) error {
	if _, err := EnsureDataDir(); err != nil {
		return err
	}
	p, err := SettingsPath()
	if err != nil {
		return err
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(p, b, 0o644)
}
