package nodelink

import (
	"io"
	"strings"

	"github.com/matzehuels/depdot/pkg/depgraph"
	"github.com/matzehuels/depdot/pkg/errors"
)

// DefaultGraphName is used when Export is called with an empty graph name.
const DefaultGraphName = "dumped_graph"

// Export writes the DOT description of g to sink.
//
// An empty graphName selects [DefaultGraphName]. The name is emitted as is;
// callers that accept names from users should check them with
// [errors.ValidateGraphName] first.
//
// A bad sink fails with INVALID_ARGUMENT before anything is written. Create,
// write and close failures are reported as IO_ERROR with the cause kept in the
// chain. A [PathSink] is closed on every return path; a [StreamSink] is never
// closed. Output written before a failure is left in place.
func Export(g depgraph.View, sink Sink, graphName string) (err error) {
	if sink == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "sink must be a path or a writer: got <nil>")
	}
	w, release, err := sink.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := release(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeIO, cerr, "close %s", sink)
		}
	}()
	return Write(g, w, graphName)
}

// ExportTo adapts dst with [SinkFor] and calls [Export].
func ExportTo(g depgraph.View, dst any, graphName string) error {
	sink, err := SinkFor(dst)
	if err != nil {
		return err
	}
	return Export(g, sink, graphName)
}

// Write streams the DOT description of g to w. The writer is not closed.
func Write(g depgraph.View, w io.Writer, graphName string) error {
	if graphName == "" {
		graphName = DefaultGraphName
	}

	dw := &dotWriter{w: w}
	dw.line("digraph " + graphName + " {")

	for _, a := range g.Atoms() {
		for _, parent := range a.Parents {
			if len(a.Matches) == 0 {
				dw.line("\t" + dumpEdge(parent, a.ID, a.ID))
				continue
			}
			for _, m := range a.Matches {
				dw.line("\t" + dumpEdge(parent, m, a.ID))
			}
		}
	}

	dw.line("\tnode [shape=circle];")
	for _, pkg := range g.Pkgs() {
		dw.line("\t" + mangleName(pkg))
	}

	var unresolved []string
	for id := range g.UnresolvedAtoms() {
		unresolved = append(unresolved, mangleName(id))
	}
	if len(unresolved) > 0 {
		dw.line("\tnode [shape=box];")
		dw.line("\t" + strings.Join(unresolved, " ") + ";")
	}

	dw.line("}")
	return dw.err
}

// ToDOT returns the DOT description of g as a string.
func ToDOT(g depgraph.View, graphName string) string {
	var sb strings.Builder
	// strings.Builder never fails.
	_ = Write(g, &sb, graphName)
	return sb.String()
}

// mangleName quotes an identifier for DOT, escaping embedded double quotes.
func mangleName(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func dumpEdge(parent, child, label string) string {
	return mangleName(parent) + "->" + mangleName(child) + " [label=" + mangleName(label) + "];"
}

// dotWriter writes newline-terminated lines and keeps the first error.
type dotWriter struct {
	w   io.Writer
	err error
}

func (d *dotWriter) line(s string) {
	if d.err != nil {
		return
	}
	if _, err := io.WriteString(d.w, s+"\n"); err != nil {
		d.err = errors.Wrap(errors.ErrCodeIO, err, "write dot")
	}
}
