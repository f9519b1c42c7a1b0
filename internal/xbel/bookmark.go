package xbel

import (
	"strconv"
	"time"
)

// Element names of the freedesktop desktop-bookmark metadata.
const (
	elementInfo         = "info"
	elementMetadata     = "metadata"
	elementMimeType     = "mime:mime-type"
	elementGroups       = "bookmark:groups"
	elementGroup        = "bookmark:group"
	elementApplications = "bookmark:applications"
	elementApplication  = "bookmark:application"
	elementPrivate      = "bookmark:private"

	// MetadataOwner is the owner attribute of the desktop-bookmark metadata block.
	MetadataOwner = "http://freedesktop.org"
)

// Bookmark is a view over one <bookmark> element: the resource URI, its
// timestamps and the applications that opened it.
type Bookmark struct {
	el *Element
}

// Element returns the underlying element.
func (b *Bookmark) Element() *Element { return b.el }

// Href returns the resource URI exactly as stored (still percent-encoded).
func (b *Bookmark) Href() string { return b.el.AttrValue("href") }

// Added returns the added attribute verbatim.
func (b *Bookmark) Added() string { return b.el.AttrValue("added") }

// Modified returns the modified attribute verbatim.
func (b *Bookmark) Modified() string { return b.el.AttrValue("modified") }

// Visited returns the visited attribute verbatim.
func (b *Bookmark) Visited() string { return b.el.AttrValue("visited") }

// ModifiedTime parses the modified attribute.
func (b *Bookmark) ModifiedTime() (time.Time, error) { return ParseTime(b.Modified()) }

// VisitedTime parses the visited attribute.
func (b *Bookmark) VisitedTime() (time.Time, error) { return ParseTime(b.Visited()) }

// metadata returns the freedesktop metadata block, or nil.
func (b *Bookmark) metadata() *Element {
	info := b.el.Element(elementInfo)
	if info == nil {
		return nil
	}
	for _, md := range info.Elements(elementMetadata) {
		if md.AttrValue("owner") == MetadataOwner {
			return md
		}
	}
	return nil
}

// MimeType returns the MIME type recorded for the resource.
func (b *Bookmark) MimeType() string {
	return b.metadata().Path(elementMimeType).AttrValue("type")
}

// Private reports whether the bookmark is flagged private.
func (b *Bookmark) Private() bool {
	return b.metadata().Path(elementPrivate) != nil
}

// Groups returns the names of the groups the bookmark belongs to.
func (b *Bookmark) Groups() []string {
	var out []string
	for _, g := range b.metadata().Path(elementGroups).Elements(elementGroup) {
		out = append(out, string(textOf(g)))
	}
	return out
}

// Applications returns the application entries of the bookmark in order.
func (b *Bookmark) Applications() []*Application {
	var out []*Application
	for _, el := range b.metadata().Path(elementApplications).Elements(elementApplication) {
		out = append(out, &Application{el: el})
	}
	return out
}

// Application is a view over one <bookmark:application> element.
type Application struct {
	el *Element
}

// Element returns the underlying element.
func (a *Application) Element() *Element { return a.el }

// Name returns the application name.
func (a *Application) Name() string { return a.el.AttrValue("name") }

// Exec returns the command line hint, with %u/%f placeholders left in place.
func (a *Application) Exec() string { return a.el.AttrValue("exec") }

// Modified returns the modified attribute, falling back to the legacy
// timestamp attribute (epoch seconds) written by older GLib versions.
func (a *Application) Modified() string {
	if v, ok := a.el.Attr("modified"); ok {
		return v
	}
	return a.el.AttrValue("timestamp")
}

// ModifiedTime parses Modified.
func (a *Application) ModifiedTime() (time.Time, error) { return ParseTime(a.Modified()) }

// Count returns how many times the application registered the resource.
func (a *Application) Count() (int, error) {
	v, ok := a.el.Attr("count")
	if !ok {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// ParseTime parses an XBEL timestamp: ISO-8601 as written by current GLib,
// or integer epoch seconds as found in legacy files.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).UTC(), nil
}

// textOf returns the concatenated character data of the element's children.
func textOf(el *Element) []byte {
	var out []byte
	for _, c := range el.Children {
		if t, ok := c.(*Text); ok {
			out = append(out, t.Data...)
		}
	}
	return out
}
