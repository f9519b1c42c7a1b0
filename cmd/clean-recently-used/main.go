// Package main provides the entry point for the clean-recently-used CLI.
//
// clean-recently-used removes entries from the desktop's recently-used
// registry (~/.local/share/recently-used.xbel) whose files lie under the
// given directories. Entries for other locations are kept byte for byte.
//
// Usage:
//
//	clean-recently-used /tmp /var/tmp
//	clean-recently-used --dry-run ~/Downloads/tmp
//	clean-recently-used history
//
// See --help for all available options.
package main

func main() {
	Execute()
}
