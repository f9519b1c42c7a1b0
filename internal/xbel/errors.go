package xbel

import (
	"errors"
	"fmt"
)

// Structural errors reported through ParseError.Err.
var (
	// ErrNoRoot is returned when the input contains no root element at all.
	// An empty registry file is therefore malformed, not empty.
	ErrNoRoot = errors.New("no root element")

	// ErrUnexpectedRoot is returned when the root element is not <xbel>.
	ErrUnexpectedRoot = errors.New("root element is not xbel")

	// ErrMultipleRoots is returned when a second element follows the root.
	ErrMultipleRoots = errors.New("more than one root element")

	// ErrTextOutsideRoot is returned for non-whitespace text before or after the root.
	ErrTextOutsideRoot = errors.New("text outside root element")

	// ErrMismatchedTag is returned when an end tag does not close the open element.
	ErrMismatchedTag = errors.New("mismatched end tag")

	// ErrUnclosedTag is returned when the input ends inside an element.
	ErrUnclosedTag = errors.New("unclosed element")

	// ErrBookmarkHref is returned for a <bookmark> without exactly one href attribute.
	ErrBookmarkHref = errors.New("bookmark must have exactly one href attribute")
)

// ParseError describes malformed registry content.
// Offset is the byte offset into the input where the problem was detected
// and Line the corresponding 1-based line number.
type ParseError struct {
	Offset  int64
	Line    int
	Element string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("xbel: line %d (offset %d): <%s>: %v", e.Line, e.Offset, e.Element, e.Err)
	}
	return fmt.Sprintf("xbel: line %d (offset %d): %v", e.Line, e.Offset, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}
