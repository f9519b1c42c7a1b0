package xbel

import (
	"bytes"
	"io"
)

// NodeKind identifies the kind of a Node.
type NodeKind int

const (
	// KindElement is an element with its attributes and children.
	KindElement NodeKind = iota
	// KindText is character data, including whitespace between elements.
	KindText
	// KindComment is an XML comment.
	KindComment
	// KindProcInst is a processing instruction, including the XML declaration.
	KindProcInst
	// KindDirective is a <!...> directive such as a DOCTYPE.
	KindDirective
	// KindByteOrderMark is a UTF-8 byte order mark before the prolog.
	KindByteOrderMark
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindProcInst:
		return "procinst"
	case KindDirective:
		return "directive"
	case KindByteOrderMark:
		return "bom"
	default:
		return "unknown"
	}
}

// Node is one item of the document tree.
type Node interface {
	// Kind reports what the node is.
	Kind() NodeKind

	// encode writes the source bytes of the node (and its subtree) to w.
	encode(w io.Writer) error
}

// Name is a qualified name as written in the source: Space holds the
// namespace prefix (not the namespace URI), Local the local part.
type Name struct {
	Space string
	Local string
}

// String returns the name in prefix:local form.
func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Attr is one attribute of an element. Value is unescaped.
type Attr struct {
	Name  Name
	Value string
}

// Element is an XML element. The raw start and end tags are kept so an
// untouched element is re-emitted exactly as it was read.
type Element struct {
	Name     Name
	Attrs    []Attr
	Children []Node

	start       []byte
	end         []byte
	selfClosing bool
	offset      int64
}

// Kind implements Node.
func (e *Element) Kind() NodeKind { return KindElement }

// SelfClosing reports whether the element was written as <name/>.
func (e *Element) SelfClosing() bool { return e.selfClosing }

// Offset returns the byte offset of the start tag in the parsed input.
func (e *Element) Offset() int64 { return e.offset }

// Attr returns the value of the attribute with the given qualified name.
// It is safe to call on a nil element.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name.String() == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the attribute value, or "" when it is absent.
func (e *Element) AttrValue(name string) string {
	v, _ := e.Attr(name)
	return v
}

// Elements returns the child elements with the given qualified name in
// document order. An empty name selects every child element.
func (e *Element) Elements(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		el, ok := c.(*Element)
		if !ok {
			continue
		}
		if name == "" || el.Name.String() == name {
			out = append(out, el)
		}
	}
	return out
}

// Element returns the first child element with the given qualified name.
func (e *Element) Element(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Name.String() == name {
			return el
		}
	}
	return nil
}

// Path follows a chain of child element names and returns the first match
// at each step, or nil when any step is missing.
func (e *Element) Path(names ...string) *Element {
	cur := e
	for _, n := range names {
		if cur == nil {
			return nil
		}
		cur = cur.Element(n)
	}
	return cur
}

func (e *Element) encode(w io.Writer) error {
	if _, err := w.Write(e.start); err != nil {
		return err
	}
	if e.selfClosing {
		return nil
	}
	for _, c := range e.Children {
		if err := c.encode(w); err != nil {
			return err
		}
	}
	_, err := w.Write(e.end)
	return err
}

// Text is character data. Raw is the source form, Data the unescaped text.
type Text struct {
	Raw  []byte
	Data []byte
}

// Kind implements Node.
func (t *Text) Kind() NodeKind { return KindText }

// IsSpace reports whether the text consists only of XML whitespace.
func (t *Text) IsSpace() bool {
	return len(bytes.Trim(t.Data, " \t\r\n")) == 0
}

func (t *Text) encode(w io.Writer) error {
	_, err := w.Write(t.Raw)
	return err
}

// Misc is a comment, processing instruction, directive or byte order mark,
// kept verbatim.
type Misc struct {
	kind NodeKind
	Raw  []byte
}

// Kind implements Node.
func (m *Misc) Kind() NodeKind { return m.kind }

func (m *Misc) encode(w io.Writer) error {
	_, err := w.Write(m.Raw)
	return err
}
