package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name inside the XDG
// config directory.
const DefaultConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the configuration file.
type File struct {
	// Prefixes are directories purged on every run, in addition to arguments.
	Prefixes []string `yaml:"prefixes,omitempty"`

	// Patterns are gitignore-style rules matched against decoded paths.
	Patterns []string `yaml:"patterns,omitempty"`

	// NormalizeUnicode compares paths in Unicode NFC form.
	NormalizeUnicode bool `yaml:"normalizeUnicode,omitempty"`

	// Journal records each run in the SQLite journal.
	Journal bool `yaml:"journal,omitempty"`

	// JournalDir overrides the directory of the journal database.
	JournalDir string `yaml:"journalDir,omitempty"`

	// Registry overrides the registry location.
	Registry string `yaml:"registry,omitempty"`
}

// LoadConfigFile loads a configuration file.
// If the file does not exist, it returns ErrConfigNotFound. Callers decide
// whether that matters based on whether the path was given explicitly.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile returns the configuration file to use:
// 1. If configPath is specified, use it directly
// 2. Otherwise look for config.yaml in the XDG config directory
//
// Returns the path if the file exists, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}
