// Package model defines the data structures shared by the purge, report and
// journal packages.
//
// This package contains the following main types:
//   - RemovedEntry: one bookmark removed from the registry
//   - Summary: the outcome of one purge run
//   - Run: a purge run as recorded in the journal
//
// The models are serializable to JSON for report output and journal storage.
package model
