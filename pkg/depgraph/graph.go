package depgraph

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrEmptyID is returned by [Graph.AddAtom] and [Graph.AddPkg] when the
	// identifier is empty.
	ErrEmptyID = errors.New("identifier must not be empty")

	// ErrUnknownNode is returned by [Graph.Validate] when an atom lists a
	// parent or match that is not a pkg of the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// Atom is one requirement of the graph together with the nodes that depend
// on it (Parents) and the nodes that satisfy it (Matches). An atom with no
// matches is unresolved.
type Atom struct {
	ID      string
	Parents []string
	Matches []string
}

// Resolved reports whether at least one node satisfies the atom.
func (a Atom) Resolved() bool { return len(a.Matches) > 0 }

// View is the read-only contract consumed by exporters. Atoms and Pkgs must
// return entries in a stable order; exporters emit them in that order.
type View interface {
	Atoms() []Atom
	Pkgs() []string
	UnresolvedAtoms() iter.Seq[string]
}

// Graph is an insertion-ordered resolver graph.
//
// The zero value is not usable; call [New]. Graph is not safe for concurrent
// mutation; concurrent readers are fine once building is done.
type Graph struct {
	atomOrder []string
	atoms     map[string]Atom
	pkgOrder  []string
	pkgs      map[string]any
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		atoms: make(map[string]Atom),
		pkgs:  make(map[string]any),
	}
}

// AddAtom records an atom with its parents and matches. Re-adding an atom
// replaces its parents and matches but keeps its original position. The
// slices are copied.
func (g *Graph) AddAtom(id string, parents, matches []string) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, exists := g.atoms[id]; !exists {
		g.atomOrder = append(g.atomOrder, id)
	}
	g.atoms[id] = Atom{
		ID:      id,
		Parents: slices.Clone(parents),
		Matches: slices.Clone(matches),
	}
	return nil
}

// AddPkg records a node with optional associated data. Re-adding a pkg
// replaces its data and keeps its position.
func (g *Graph) AddPkg(id string, data any) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, exists := g.pkgs[id]; !exists {
		g.pkgOrder = append(g.pkgOrder, id)
	}
	g.pkgs[id] = data
	return nil
}

// Atom returns the atom with the given identifier.
func (g *Graph) Atom(id string) (Atom, bool) {
	a, ok := g.atoms[id]
	return a, ok
}

// Pkg returns the data stored for a node and whether the node exists.
func (g *Graph) Pkg(id string) (any, bool) {
	d, ok := g.pkgs[id]
	return d, ok
}

// Atoms returns all atoms in insertion order. Parent and match slices are
// shared with the graph and must not be modified.
func (g *Graph) Atoms() []Atom {
	out := make([]Atom, 0, len(g.atomOrder))
	for _, id := range g.atomOrder {
		out = append(out, g.atoms[id])
	}
	return out
}

// Pkgs returns all node identifiers in insertion order.
func (g *Graph) Pkgs() []string { return slices.Clone(g.pkgOrder) }

// UnresolvedAtoms yields the identifiers of atoms without matches, in
// insertion order. Each call returns a fresh sequence.
func (g *Graph) UnresolvedAtoms() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, id := range g.atomOrder {
			if g.atoms[id].Resolved() {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// AtomCount returns the number of atoms.
func (g *Graph) AtomCount() int { return len(g.atomOrder) }

// PkgCount returns the number of nodes.
func (g *Graph) PkgCount() int { return len(g.pkgOrder) }

// Validate checks that every parent and match of every atom is a known pkg.
// It returns all violations joined, each wrapping [ErrUnknownNode].
func (g *Graph) Validate() error {
	var errs []error
	for _, id := range g.atomOrder {
		a := g.atoms[id]
		for _, p := range a.Parents {
			if _, ok := g.pkgs[p]; !ok {
				errs = append(errs, fmt.Errorf("atom %s: parent %s: %w", id, p, ErrUnknownNode))
			}
		}
		for _, m := range a.Matches {
			if _, ok := g.pkgs[m]; !ok {
				errs = append(errs, fmt.Errorf("atom %s: match %s: %w", id, m, ErrUnknownNode))
			}
		}
	}
	return errors.Join(errs...)
}

// Ensure Graph satisfies View.
var _ View = (*Graph)(nil)
