package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() before any registry I/O
// takes place, so callers can use errors.Is() to tell argument problems
// apart from parse and I/O failures. Prefix problems are reported with
// purge.ErrNoPrefix and purge.ErrRelativePrefix.
var (
	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrRelativeRegistry is returned when the configured registry path is not absolute.
	ErrRelativeRegistry = errors.New("invalid registry path: must be an absolute path")
)
