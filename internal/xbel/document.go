package xbel

import (
	"bufio"
	"bytes"
	"io"
)

// Document is a parsed registry. Prolog holds the nodes before the root
// element (XML declaration, comments, whitespace) and Epilog those after it.
//
// A Document returned by NewDocument has no root and stands for a registry
// that does not exist yet.
type Document struct {
	Prolog []Node
	Root   *Element
	Epilog []Node
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Empty reports whether the document has no root element.
func (d *Document) Empty() bool {
	return d.Root == nil
}

// Version returns the version attribute of the root element.
func (d *Document) Version() string {
	if d.Root == nil {
		return ""
	}
	return d.Root.AttrValue("version")
}

// Bookmarks returns every bookmark in document order, including bookmarks
// nested in folders.
func (d *Document) Bookmarks() []*Bookmark {
	if d.Root == nil {
		return nil
	}
	var out []*Bookmark
	collectBookmarks(d.Root, &out)
	return out
}

func collectBookmarks(el *Element, out *[]*Bookmark) {
	for _, child := range el.Elements("") {
		switch child.Name.String() {
		case ElementBookmark:
			*out = append(*out, &Bookmark{el: child})
		case ElementFolder:
			collectBookmarks(child, out)
		}
	}
}

// RemoveBookmarks removes every bookmark for which match returns true and
// returns the removed bookmarks in document order.
//
// Each removed element takes the whitespace-only text node directly before
// it (its indentation) along, so the remaining entries keep their layout.
// Folders are descended into but never removed, even when they end up empty.
func (d *Document) RemoveBookmarks(match func(*Bookmark) bool) []*Bookmark {
	if d.Root == nil {
		return nil
	}
	var removed []*Bookmark
	removeBookmarks(d.Root, match, &removed)
	return removed
}

func removeBookmarks(el *Element, match func(*Bookmark) bool, removed *[]*Bookmark) {
	kept := make([]Node, 0, len(el.Children))
	changed := false
	for _, c := range el.Children {
		child, ok := c.(*Element)
		if !ok {
			kept = append(kept, c)
			continue
		}
		switch child.Name.String() {
		case ElementBookmark:
			b := &Bookmark{el: child}
			if match(b) {
				*removed = append(*removed, b)
				changed = true
				if n := len(kept); n > 0 {
					if t, ok := kept[n-1].(*Text); ok && t.IsSpace() {
						kept = kept[:n-1]
					}
				}
				continue
			}
		case ElementFolder:
			removeBookmarks(child, match, removed)
		}
		kept = append(kept, c)
	}
	if changed {
		el.Children = kept
	}
}

// Encode writes the document in its source form.
func (d *Document) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, n := range d.Prolog {
		if err := n.encode(bw); err != nil {
			return err
		}
	}
	if d.Root != nil {
		if err := d.Root.encode(bw); err != nil {
			return err
		}
	}
	for _, n := range d.Epilog {
		if err := n.encode(bw); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Bytes returns the encoded document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_ = d.Encode(&buf) //nolint:errcheck // bytes.Buffer writes do not fail
	return buf.Bytes()
}
