package xmltree

import "slices"

// Attr is one attribute of an element. Name keeps any namespace prefix
// ("xml:lang").
type Attr struct {
	Name  string
	Value string
}

// Element is a node of an XML tree in the ElementTree shape: Text is the
// character data before the first child and Tail the character data after
// the element's end tag, up to the next sibling.
//
// Comments, processing instructions and directives are not represented.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Tail     string
	Children []*Element
}

// Get returns the value of the named attribute.
func (e *Element) Get(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Set adds the attribute or replaces its value, keeping attribute order.
func (e *Element) Set(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// Find returns the first direct child with the given tag, or nil.
func (e *Element) Find(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// Equal reports whether two trees have the same tags, attributes (in order),
// text and tails.
func (e *Element) Equal(o *Element) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Tag != o.Tag || e.Text != o.Text || e.Tail != o.Tail {
		return false
	}
	if !slices.Equal(e.Attrs, o.Attrs) || len(e.Children) != len(o.Children) {
		return false
	}
	for i := range e.Children {
		if !e.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
