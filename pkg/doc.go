// Package pkg provides the core libraries for depdot.
//
// # Overview
//
// depdot turns a resolver's dependency graph into Graphviz DOT. The pkg
// directory is organized into these areas:
//
//  1. [depgraph] - The graph model: atoms, pkgs, and their order
//  2. [io] - JSON and TOML graph files
//  3. [render/nodelink] - DOT export to paths and writers
//  4. [atom] - Package atom parsing
//  5. [xmltree] - XML escaping and a tiered choice of XML backends
//  6. [pipeline] - Orchestration (load → export) with caching
//  7. [cache], [observability], [errors], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	graph.json / graph.toml
//	         ↓
//	    [io] package (decode)
//	         ↓
//	    [depgraph] package (ordered atoms and pkgs)
//	         ↓
//	    [render/nodelink] package (DOT)
//	         ↓
//	    file or stream
//
// # Quick Start
//
//	g, err := io.Import("graph.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := nodelink.ExportTo(g, "deps.dot", "deps"); err != nil {
//	    log.Fatal(err)
//	}
package pkg
