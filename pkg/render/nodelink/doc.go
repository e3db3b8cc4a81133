// Package nodelink writes resolver graphs as Graphviz DOT documents.
//
// # Overview
//
// The exporter walks a [depgraph.View] once and emits a node-link
// description: one labelled edge per (parent, match) pair of every atom,
// the resolved packages as circles, and unresolved atoms grouped as boxes.
// Layout and rendering are left to Graphviz.
//
// # Format
//
// For a graph with one resolved and one unresolved atom the output is:
//
//	digraph dumped_graph {
//		"root"->"dev-libs/foo-1.0" [label="dev-libs/foo"];
//		"root"->"dev-libs/bar" [label="dev-libs/bar"];
//		node [shape=circle];
//		"root"
//		"dev-libs/foo-1.0"
//		node [shape=box];
//		"dev-libs/bar";
//	}
//
// Lines come in this order: header, edges, circle styling, package nodes,
// then the box group if any atom is unresolved. An unresolved atom is drawn
// as an edge from each parent to the atom itself. Every identifier is quoted
// and embedded double quotes are escaped with a backslash.
//
// # Sinks
//
// [Export] writes to a [Sink]:
//
//   - [PathSink]: a file created by the exporter and closed before it returns
//   - [StreamSink]: a caller-owned io.Writer that is left open
//
// [SinkFor] and [ExportTo] accept either form as a plain value:
//
//	err := nodelink.ExportTo(g, "deps.dot", "")
//	err = nodelink.ExportTo(g, os.Stdout, "world")
//
// # Verification
//
// [Verify] runs the document through the Graphviz parser from
// [github.com/goccy/go-graphviz]. It is a syntax check only.
package nodelink
