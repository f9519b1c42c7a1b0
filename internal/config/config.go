package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/lucaswerkmeister/clean-recently-used/internal/purge"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "clean-recently-used"

	// DefaultHistoryLimit is the number of runs shown by the history command.
	DefaultHistoryLimit = 20
)

// Config holds all configuration options for one invocation.
// It is populated from CLI flags and the configuration file and passed
// through the application rather than kept in global state.
type Config struct {
	// Prefixes are the directories whose entries are removed.
	// Arguments come first, followed by prefixes from the configuration file.
	Prefixes []string

	// Patterns are gitignore-style rules selecting additional entries.
	Patterns []string

	// NormalizeUnicode compares paths in Unicode NFC form.
	NormalizeUnicode bool

	// RegistryPath overrides the registry location.
	// Empty means the XDG default ($XDG_DATA_HOME/recently-used.xbel).
	RegistryPath string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the XDG config directory is searched.
	ConfigFilePath string

	// DryRun reports what would be removed without writing the registry.
	DryRun bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Journal records each run in the SQLite journal.
	Journal bool

	// JournalDir is the directory holding the journal database.
	// Defaults to the XDG data directory.
	JournalDir string

	// Report prints a human-readable summary after the run.
	// Dry runs always print one.
	Report bool

	// JSONReport prints the summary as JSON. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport prints the summary as Markdown. Mutually exclusive with JSONReport.
	MarkdownReport bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		JournalDir: XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for clean-recently-used.
// On Linux: ~/.local/share/clean-recently-used
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for clean-recently-used.
// On Linux: ~/.config/clean-recently-used
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(p string) string {
	if p == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(xdg.Home, p[2:])
	}
	return p
}

// Merge applies the settings of a configuration file. Prefixes and
// patterns are appended after those already set; flags that are already
// enabled stay enabled.
func (c *Config) Merge(f *File) {
	if f == nil {
		return
	}
	for _, p := range f.Prefixes {
		c.Prefixes = append(c.Prefixes, ExpandHome(p))
	}
	c.Patterns = append(c.Patterns, f.Patterns...)
	c.NormalizeUnicode = c.NormalizeUnicode || f.NormalizeUnicode
	c.Journal = c.Journal || f.Journal
	if c.RegistryPath == "" && f.Registry != "" {
		c.RegistryPath = ExpandHome(f.Registry)
	}
	if f.JournalDir != "" {
		c.JournalDir = ExpandHome(f.JournalDir)
	}
}

// Validate checks if the configuration is valid and normalizes Prefixes.
// It returns the first problem found as a sentinel error, wrapped with the
// offending value where there is one.
func (c *Config) Validate() error {
	// Something has to select entries, otherwise the run is meaningless
	if len(c.Prefixes) == 0 && len(c.Patterns) == 0 {
		return purge.ErrNoPrefix
	}

	prefixes, err := purge.NormalizePrefixes(c.Prefixes)
	if err != nil {
		return err
	}
	c.Prefixes = prefixes

	if c.RegistryPath != "" && !filepath.IsAbs(c.RegistryPath) {
		return fmt.Errorf("%w: %q", ErrRelativeRegistry, c.RegistryPath)
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// WantsReport reports whether a summary is printed after the run.
func (c *Config) WantsReport() bool {
	return c.Report || c.JSONReport || c.MarkdownReport || c.DryRun
}
