package xmltree

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/depdot/pkg/errors"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Escape replaces & with &amp;, < with &lt; and > with &gt;. Replacement
// output is never rescanned, so "&lt;" becomes "&amp;lt;". Quotes are left
// alone; use [EscapeAttr] for attribute values.
func Escape(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr is [Escape] plus " as &quot;, for double-quoted attribute values.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// Encode writes e and its subtree as XML. Elements without text or children
// are written self-closed. The tail of e is written after its end tag.
func Encode(w io.Writer, e *Element) error {
	if e == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "encode: nil element")
	}
	bw := bufio.NewWriter(w)
	encode(bw, e)
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode xml")
	}
	return nil
}

// bufio.Writer keeps the first error and reports it on Flush.
func encode(w *bufio.Writer, e *Element) {
	w.WriteByte('<')
	w.WriteString(e.Tag)
	for _, a := range e.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		w.WriteString(EscapeAttr(a.Value))
		w.WriteByte('"')
	}
	if e.Text == "" && len(e.Children) == 0 {
		w.WriteString("/>")
	} else {
		w.WriteByte('>')
		w.WriteString(Escape(e.Text))
		for _, c := range e.Children {
			encode(w, c)
		}
		w.WriteString("</")
		w.WriteString(e.Tag)
		w.WriteByte('>')
	}
	w.WriteString(Escape(e.Tail))
}
