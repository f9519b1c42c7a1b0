// Package xbel parses and re-emits the XBEL bookmark list used by desktop
// environments to record recently used files (recently-used.xbel).
//
// The document is modelled as a generic ordered tree of nodes rather than a
// set of narrow structs. Every node keeps the exact source bytes it was parsed
// from, so encoding a document reproduces the input byte for byte, including
// attribute order, quoting, entity references, whitespace inside tags and the
// self-closing form of empty elements. Removing a node is the only mutation
// the package supports.
//
// Typed views (Bookmark, Application) sit on top of the tree and expose the
// well-known XBEL vocabulary without copying it:
//
//	doc, err := xbel.Parse(data)
//	for _, b := range doc.Bookmarks() {
//	    fmt.Println(b.Href(), b.Modified())
//	}
//	removed := doc.RemoveBookmarks(func(b *xbel.Bookmark) bool { ... })
//	err = doc.Encode(w)
package xbel
