package xmltree

import (
	"encoding/xml"
	"io"

	"github.com/matzehuels/depdot/pkg/errors"
)

type bundled struct{}

// Bundled returns the fallback backend built on encoding/xml.
func Bundled() Backend { return bundled{} }

func (bundled) Name() string { return "bundled" }
func (bundled) Tier() Tier { return TierBundled }

func (bundled) Parse(r io.Reader) (*Element, error) {
	d := xml.NewDecoder(r)

	var root *Element
	var stack []*Element
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: qualified(t.Name)}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New(errors.ErrCodeInvalidFormat, "parse xml: second root element <%s>", el.Tag)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			name := qualified(t.Name)
			if len(stack) == 0 || stack[len(stack)-1].Tag != name {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "parse xml: unexpected </%s>", name)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				appendCharData(stack[len(stack)-1], string(t))
			}
		}
	}

	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "parse xml: no root element")
	}
	if len(stack) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "parse xml: unclosed <%s>", stack[len(stack)-1].Tag)
	}
	return root, nil
}

func (bundled) Serialize(w io.Writer, e *Element) error { return Encode(w, e) }

// appendCharData attaches s to the text of parent or to the tail of its last
// child, whichever comes last in document order.
func appendCharData(parent *Element, s string) {
	if n := len(parent.Children); n > 0 {
		parent.Children[n-1].Tail += s
		return
	}
	parent.Text += s
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
