// Package log provides the application logger, built on top of the
// standard slog package.
//
// The PrivateHandler rewrites attribute values before they reach the
// underlying handler:
//   - The user's home directory is shortened to "~"
//   - Passwords embedded in URIs (sftp://user:pw@host/) are masked
//   - Values under credential-like keys (password, token, secret) are masked
//
// Registry entries name files the user opened, so log lines produced by
// -v can be pasted into bug reports without leaking more than needed.
//
// # Usage
//
//	logger := log.NewPrivateLogger(os.Stderr, verbose)
//	logger.Debug("removed entry", "href", "file:///home/me/tmp/a.txt")
//	// href=file://~/tmp/a.txt
package log
