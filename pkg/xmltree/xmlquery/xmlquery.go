//go:build !xmltree_noxmlquery

package xmlquery

import (
	"encoding/xml"
	"io"

	"github.com/antchfx/xmlquery"

	"github.com/matzehuels/depdot/pkg/errors"
	"github.com/matzehuels/depdot/pkg/xmltree"
)

func init() {
	xmltree.Register(Backend{})
}

// Backend adapts github.com/antchfx/xmlquery to [xmltree.Backend]. It has no
// tree writer of its own and serializes with [xmltree.Encode].
type Backend struct{}

func (Backend) Name() string { return "xmlquery" }
func (Backend) Tier() xmltree.Tier { return xmltree.TierLegacy }

// Parse reads a document and converts its first element node.
func (Backend) Parse(r io.Reader) (*xmltree.Element, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse xml")
	}
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return fromNode(n), nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "parse xml: no root element")
}

func (Backend) Serialize(w io.Writer, e *xmltree.Element) error {
	return xmltree.Encode(w, e)
}

func fromNode(n *xmlquery.Node) *xmltree.Element {
	el := &xmltree.Element{Tag: qualified(n.Prefix, n.Data)}
	for _, a := range n.Attr {
		el.Attrs = append(el.Attrs, xmltree.Attr{Name: attrName(a.Name), Value: a.Value})
	}

	var last *xmltree.Element
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if last == nil {
				el.Text += c.Data
			} else {
				last.Tail += c.Data
			}
		case xmlquery.ElementNode:
			last = fromNode(c)
			el.Children = append(el.Children, last)
		}
	}
	return el
}

func attrName(n xml.Name) string { return qualified(n.Space, n.Local) }

func qualified(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}
