package model

import "time"

// RemovedEntry describes one bookmark removed from the registry.
type RemovedEntry struct {
	// Href is the bookmark URI as stored in the registry.
	Href string `json:"href"`

	// Path is the decoded filesystem path of Href.
	Path string `json:"path"`

	// Rule is the prefix or pattern that selected the entry.
	Rule string `json:"rule"`

	// Modified is the bookmark's modified attribute, verbatim.
	Modified string `json:"modified,omitempty"`

	// Applications lists the names of the applications that opened the resource.
	Applications []string `json:"applications,omitempty"`
}

// Summary is the outcome of one purge run.
type Summary struct {
	// RegistryPath is the registry file the run operated on.
	RegistryPath string `json:"registry"`

	// Prefixes are the normalized directory prefixes that were purged.
	Prefixes []string `json:"prefixes"`

	// Patterns are the additional path patterns, if any.
	Patterns []string `json:"patterns,omitempty"`

	// Removed lists the removed entries in registry order.
	Removed []RemovedEntry `json:"removed"`

	// Kept is the number of bookmarks left in the registry.
	Kept int `json:"kept"`

	// Existed reports whether the registry file was present.
	Existed bool `json:"existed"`

	// Written reports whether the registry file was rewritten.
	Written bool `json:"written"`

	// DryRun reports whether the run was a dry run.
	DryRun bool `json:"dryRun"`

	// Time is when the run started.
	Time time.Time `json:"time"`
}

// NewSummary creates an empty Summary for the given registry.
func NewSummary(registryPath string, prefixes, patterns []string) *Summary {
	return &Summary{
		RegistryPath: registryPath,
		Prefixes:     prefixes,
		Patterns:     patterns,
		Removed:      []RemovedEntry{},
		Time:         time.Now(),
	}
}

// RemovedCount returns the number of removed entries.
func (s *Summary) RemovedCount() int {
	return len(s.Removed)
}

// HasRemovals reports whether any entry was removed.
func (s *Summary) HasRemovals() bool {
	return len(s.Removed) > 0
}
