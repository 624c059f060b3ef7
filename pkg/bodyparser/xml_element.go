package bodyparser

import (
	"github.com/beevik/etree"
)

// XMLElement is the Record produced by the XML decoder. It wraps the
// document's root element.
//
// Field resolves child elements by tag name: a leaf child yields its text, a
// child with children of its own yields another *XMLElement, and repeated
// children yield a []any of those values.
type XMLElement struct {
	el *etree.Element
}

// Name returns the element's tag name.
func (e *XMLElement) Name() string {
	return e.el.Tag
}

// Text returns the element's character data.
func (e *XMLElement) Text() string {
	return e.el.Text()
}

// String returns the element's character data.
func (e *XMLElement) String() string {
	return e.el.Text()
}

// Attr returns the value of the named attribute.
func (e *XMLElement) Attr(name string) (string, bool) {
	a := e.el.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// Attrs returns all attributes keyed by name.
func (e *XMLElement) Attrs() map[string]string {
	attrs := make(map[string]string, len(e.el.Attr))
	for _, a := range e.el.Attr {
		attrs[a.Key] = a.Value
	}
	return attrs
}

// Children returns the element's child elements.
func (e *XMLElement) Children() []*XMLElement {
	children := e.el.ChildElements()
	out := make([]*XMLElement, len(children))
	for i, c := range children {
		out[i] = &XMLElement{el: c}
	}
	return out
}

// Element exposes the underlying etree element.
func (e *XMLElement) Element() *etree.Element {
	return e.el
}

// Field implements Record.
func (e *XMLElement) Field(name string) (any, bool) {
	matches := e.el.SelectElements(name)
	switch len(matches) {
	case 0:
		return nil, false
	case 1:
		return elementValue(matches[0]), true
	default:
		values := make([]any, len(matches))
		for i, m := range matches {
			values[i] = elementValue(m)
		}
		return values, true
	}
}

// Fields implements Record. Attributes, when present, are stored under
// "@attributes".
func (e *XMLElement) Fields() map[string]any {
	fields := make(map[string]any)
	for _, c := range e.el.ChildElements() {
		if _, seen := fields[c.Tag]; seen {
			continue
		}
		fields[c.Tag], _ = e.Field(c.Tag)
	}

	if len(e.el.Attr) > 0 {
		attrs := make(map[string]any, len(e.el.Attr))
		for k, v := range e.Attrs() {
			attrs[k] = v
		}
		fields["@attributes"] = attrs
	}
	return fields
}

func elementValue(el *etree.Element) any {
	if len(el.ChildElements()) == 0 && len(el.Attr) == 0 {
		return el.Text()
	}
	return &XMLElement{el: el}
}
