package xbel

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

const (
	// ElementRoot is the name of the document element.
	ElementRoot = "xbel"
	// ElementBookmark is the name of a bookmark entry.
	ElementBookmark = "bookmark"
	// ElementFolder is the name of an XBEL folder, which may nest bookmarks.
	ElementFolder = "folder"
)

var byteOrderMark = []byte("\xef\xbb\xbf")

// placeholder stands in for bytes that are not valid UTF-8 while
// tokenizing. Source spans are always taken from the original data.
const placeholder = '_'

// parser builds the tree from raw tokens and keeps the source span of each.
type parser struct {
	data  []byte
	dec   *xml.Decoder
	doc   *Document
	stack []*Element
	// base is the offset in data where the decoder input starts.
	base int64
	// lossy is set when invalid UTF-8 was replaced for the decoder.
	lossy bool
}

// Parse parses an XBEL document. The returned document keeps references
// into data, which must not be modified afterwards.
//
// A leading byte order mark is kept as the first prolog node. Bytes that
// are not valid UTF-8 are written back unchanged; in attribute values they
// read as U+FFFD.
//
// Any malformation is reported as a *ParseError; no partial document is
// returned.
func Parse(data []byte) (*Document, error) {
	p := &parser{
		data: data,
		doc:  NewDocument(),
	}
	if bytes.HasPrefix(data, byteOrderMark) {
		p.base = int64(len(byteOrderMark))
		p.doc.Prolog = append(p.doc.Prolog, &Misc{kind: KindByteOrderMark, Raw: data[:p.base]})
	}
	input, lossy := sanitize(data[p.base:])
	p.lossy = lossy
	p.dec = xml.NewDecoder(bytes.NewReader(input))
	// RawToken leaves namespace prefixes untranslated and does not match
	// start and end tags; the parser checks nesting itself.
	p.dec.Strict = true

	if err := p.run(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

func (p *parser) run() error {
	prev := p.base
	for {
		tok, err := p.dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return p.errorAt(p.base+p.dec.InputOffset(), "", err)
		}

		off := p.base + p.dec.InputOffset()
		raw := p.data[prev:off]
		start := prev
		prev = off

		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.startElement(t, raw, start); err != nil {
				return err
			}
		case xml.EndElement:
			if err := p.endElement(t, raw, start); err != nil {
				return err
			}
		case xml.CharData:
			text := &Text{Raw: raw, Data: bytes.Clone(t)}
			if len(p.stack) == 0 && !text.IsSpace() {
				return p.errorAt(start, "", ErrTextOutsideRoot)
			}
			p.appendNode(text)
		case xml.Comment:
			p.appendNode(&Misc{kind: KindComment, Raw: raw})
		case xml.ProcInst:
			p.appendNode(&Misc{kind: KindProcInst, Raw: raw})
		case xml.Directive:
			p.appendNode(&Misc{kind: KindDirective, Raw: raw})
		}
	}

	if len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		return p.errorAt(int64(len(p.data)), top.Name.String(), ErrUnclosedTag)
	}
	if p.doc.Root == nil {
		return p.errorAt(int64(len(p.data)), "", ErrNoRoot)
	}
	return p.checkBookmarks(p.doc.Root)
}

func (p *parser) startElement(t xml.StartElement, raw []byte, offset int64) error {
	el := &Element{
		Name:   Name{Space: t.Name.Space, Local: t.Name.Local},
		start:  raw,
		offset: offset,
	}
	attrs := t.Attr
	if p.lossy && !utf8.Valid(raw) {
		if a, ok := replacedAttrs(raw); ok {
			attrs = a
		}
	}
	if len(attrs) > 0 {
		el.Attrs = make([]Attr, len(attrs))
		for i, a := range attrs {
			el.Attrs[i] = Attr{
				Name:  Name{Space: a.Name.Space, Local: a.Name.Local},
				Value: a.Value,
			}
		}
	}

	if len(p.stack) == 0 {
		if p.doc.Root != nil {
			return p.errorAt(offset, el.Name.String(), ErrMultipleRoots)
		}
		if el.Name.String() != ElementRoot {
			return p.errorAt(offset, el.Name.String(), ErrUnexpectedRoot)
		}
		p.doc.Root = el
	} else {
		parent := p.stack[len(p.stack)-1]
		parent.Children = append(parent.Children, el)
	}
	p.stack = append(p.stack, el)
	return nil
}

func (p *parser) endElement(t xml.EndElement, raw []byte, offset int64) error {
	name := Name{Space: t.Name.Space, Local: t.Name.Local}
	if len(p.stack) == 0 {
		return p.errorAt(offset, name.String(), ErrMismatchedTag)
	}
	top := p.stack[len(p.stack)-1]
	if top.Name != name {
		return p.errorAt(offset, name.String(),
			fmt.Errorf("%w: expected </%s>", ErrMismatchedTag, top.Name))
	}
	// The decoder synthesizes the end half of <name/> without consuming input.
	if len(raw) == 0 {
		top.selfClosing = true
	} else {
		top.end = raw
	}
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

// appendNode adds a non-element node to the open element, or to the prolog
// or epilog when no element is open.
func (p *parser) appendNode(n Node) {
	switch {
	case len(p.stack) > 0:
		parent := p.stack[len(p.stack)-1]
		parent.Children = append(parent.Children, n)
	case p.doc.Root == nil:
		p.doc.Prolog = append(p.doc.Prolog, n)
	default:
		p.doc.Epilog = append(p.doc.Epilog, n)
	}
}

func (p *parser) checkBookmarks(el *Element) error {
	for _, child := range el.Elements("") {
		switch child.Name.String() {
		case ElementBookmark:
			n := 0
			for _, a := range child.Attrs {
				if a.Name.String() == "href" {
					n++
				}
			}
			if n != 1 {
				return p.errorAt(child.offset, ElementBookmark, ErrBookmarkHref)
			}
		case ElementFolder:
			if err := p.checkBookmarks(child); err != nil {
				return err
			}
		}
	}
	return nil
}

// sanitize replaces every byte that is not part of a valid UTF-8 sequence
// with placeholder. The result has the length of b, so decoder offsets stay
// valid for the original data.
func sanitize(b []byte) ([]byte, bool) {
	if utf8.Valid(b) {
		return b, false
	}
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			out = append(out, placeholder)
		} else {
			out = append(out, b[:size]...)
		}
		b = b[size:]
	}
	return out, true
}

// replacedAttrs decodes the attributes of a start tag with invalid UTF-8
// replaced by U+FFFD.
func replacedAttrs(raw []byte) ([]xml.Attr, bool) {
	dec := xml.NewDecoder(bytes.NewReader(bytes.ToValidUTF8(raw, []byte("\uFFFD"))))
	tok, err := dec.RawToken()
	if err != nil {
		return nil, false
	}
	start, ok := tok.(xml.StartElement)
	if !ok {
		return nil, false
	}
	return start.Attr, true
}

func (p *parser) errorAt(offset int64, element string, err error) error {
	if offset > int64(len(p.data)) {
		offset = int64(len(p.data))
	}
	return &ParseError{
		Offset:  offset,
		Line:    bytes.Count(p.data[:offset], []byte("\n")) + 1,
		Element: element,
		Err:     err,
	}
}
