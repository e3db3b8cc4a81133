// Package render groups the output formats for dependency graphs.
//
// The [nodelink] subpackage writes a graph as a Graphviz DOT digraph:
// packages as circles, atoms as labelled edges, unresolved atoms as boxes.
package render
