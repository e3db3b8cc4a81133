//go:build !xmltree_noetree

package etree

import (
	"io"

	"github.com/beevik/etree"

	"github.com/matzehuels/depdot/pkg/errors"
	"github.com/matzehuels/depdot/pkg/xmltree"
)

func init() {
	xmltree.Register(Backend{})
}

// Backend adapts github.com/beevik/etree to [xmltree.Backend].
type Backend struct{}

func (Backend) Name() string { return "etree" }
func (Backend) Tier() xmltree.Tier { return xmltree.TierNative }

// Parse reads a document and converts its root element.
func (Backend) Parse(r io.Reader) (*xmltree.Element, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse xml")
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "parse xml: no root element")
	}
	return fromEtree(root), nil
}

// Serialize builds an etree document from e and writes it.
func (Backend) Serialize(w io.Writer, e *xmltree.Element) error {
	if e == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "serialize: nil element")
	}
	doc := etree.NewDocument()
	toEtree(doc.CreateElement(e.Tag), e)
	if _, err := doc.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write xml")
	}
	return nil
}

func fromEtree(src *etree.Element) *xmltree.Element {
	el := &xmltree.Element{Tag: src.FullTag()}
	for _, a := range src.Attr {
		el.Attrs = append(el.Attrs, xmltree.Attr{Name: a.FullKey(), Value: a.Value})
	}

	var last *xmltree.Element
	for _, tok := range src.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			if last == nil {
				el.Text += t.Data
			} else {
				last.Tail += t.Data
			}
		case *etree.Element:
			last = fromEtree(t)
			el.Children = append(el.Children, last)
		}
	}
	return el
}

func toEtree(dst *etree.Element, src *xmltree.Element) {
	for _, a := range src.Attrs {
		dst.CreateAttr(a.Name, a.Value)
	}
	if src.Text != "" {
		dst.SetText(src.Text)
	}
	for _, c := range src.Children {
		child := dst.CreateElement(c.Tag)
		toEtree(child, c)
		if c.Tail != "" {
			child.SetTail(c.Tail)
		}
	}
}
