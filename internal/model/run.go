package model

import "time"

// Run is a purge run as recorded in the journal.
type Run struct {
	// ID is the journal row identifier.
	ID int64 `json:"id"`

	// Time is when the run started.
	Time time.Time `json:"time"`

	// RegistryPath is the registry file the run operated on.
	RegistryPath string `json:"registry"`

	// Prefixes and Patterns are the selection rules of the run.
	Prefixes []string `json:"prefixes"`
	Patterns []string `json:"patterns,omitempty"`

	// Removed is the number of removed entries.
	Removed int `json:"removed"`

	// Kept is the number of bookmarks left after the run.
	Kept int `json:"kept"`

	// DryRun and Written mirror the Summary fields.
	DryRun  bool `json:"dryRun"`
	Written bool `json:"written"`

	// DigestBefore and DigestAfter are SHA3-256 digests of the registry
	// content before and after the run. Empty when the file did not exist.
	DigestBefore string `json:"digestBefore,omitempty"`
	DigestAfter  string `json:"digestAfter,omitempty"`
}
