package purge

import "errors"

// Argument errors. These are returned before any registry I/O takes place.
var (
	// ErrNoPrefix is returned when neither a prefix nor a pattern is given.
	ErrNoPrefix = errors.New("no directory specified: provide one or more absolute paths")

	// ErrRelativePrefix is returned for a prefix that is not an absolute path.
	ErrRelativePrefix = errors.New("invalid directory: must be an absolute path")

	// ErrInvalidPattern is returned when a path pattern cannot be compiled.
	ErrInvalidPattern = errors.New("invalid path pattern")
)
