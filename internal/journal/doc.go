// Package journal keeps a SQLite record of purge runs.
//
// Every run stores its selection rules, counts and SHA3-256 digests of the
// registry content before and after the rewrite, plus one row per removed
// entry. The history command reads it back; the digests let a user check
// whether another program changed the registry between two runs.
//
// The database lives in the XDG data directory as journal.db and is opened
// with modernc.org/sqlite, which needs no CGO.
package journal
