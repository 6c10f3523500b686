// Package xmldoc wraps a parsed eID XML document and exposes first-match
// lookups of element text and attribute values by local name.
//
// Lookups never fail. A missing element, a missing attribute, an element with no
// leading text, or a document that could not be parsed all read as the empty string.
package xmldoc

import (
	"github.com/beevik/etree"
)

// Document is the parsed representation of one XML payload. It is owned by the
// caller that created it and is not safe for concurrent use after Clear.
type Document struct {
	tree      *etree.Document
	malformed bool
}

// Parse builds a Document from raw XML. Input that is not well-formed, including
// input without exactly one root element, produces an empty placeholder document;
// every lookup against it returns "".
func Parse(raw string) *Document {
	tree := etree.NewDocument()
	if err := tree.ReadFromString(raw); err != nil || !singleRoot(tree) {
		return &Document{tree: etree.NewDocument(), malformed: true}
	}
	return &Document{tree: tree}
}

// singleRoot reports whether the top level holds exactly one element and no
// text besides whitespace. etree accepts a second root or trailing text after
// the root; a well-formed document does not.
func singleRoot(tree *etree.Document) bool {
	roots := 0
	for _, tok := range tree.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
		case *etree.CharData:
			if !t.IsWhitespace() {
				return false
			}
		}
	}
	return roots == 1
}

// Malformed reports whether the input failed to parse.
func (d *Document) Malformed() bool {
	return d != nil && d.malformed
}

// TagValue returns the text immediately inside the first element named tag, in
// document order.
func (d *Document) TagValue(tag string) string {
	el := d.first(tag)
	if el == nil {
		return ""
	}
	return el.Text()
}

// AttrValue returns the value of attr on the first element named tag.
func (d *Document) AttrValue(tag, attr string) string {
	el := d.first(tag)
	if el == nil {
		return ""
	}
	a := el.SelectAttr(attr)
	if a == nil {
		return ""
	}
	return a.Value
}

// Clear drops the parsed tree. Lookups on a cleared Document return "".
func (d *Document) Clear() {
	if d == nil {
		return
	}
	d.tree = nil
}

// first walks the tree depth-first so the earliest element in document order
// wins. etree path queries are avoided because tag names come from callers and
// an invalid path panics.
func (d *Document) first(tag string) *etree.Element {
	if d == nil || d.tree == nil || tag == "" {
		return nil
	}
	return findFirst(&d.tree.Element, tag)
}

func findFirst(parent *etree.Element, tag string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Tag == tag {
			return child
		}
		if found := findFirst(child, tag); found != nil {
			return found
		}
	}
	return nil
}
