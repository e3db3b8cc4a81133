package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depdot/pkg/depgraph"
	"github.com/matzehuels/depdot/pkg/errors"
)

type graph struct {
	Atoms []atomEntry `json:"atoms" toml:"atoms"`
	Pkgs  []pkgEntry  `json:"pkgs" toml:"pkgs"`
}

type atomEntry struct {
	Atom    string   `json:"atom" toml:"atom"`
	Parents []string `json:"parents,omitempty" toml:"parents,omitempty"`
	Matches []string `json:"matches,omitempty" toml:"matches,omitempty"`
}

type pkgEntry struct {
	ID   string `json:"id" toml:"id"`
	Data any    `json:"data,omitempty" toml:"data,omitempty"`
}

func fromGraph(g *depgraph.Graph) graph {
	out := graph{
		Atoms: make([]atomEntry, 0, g.AtomCount()),
		Pkgs:  make([]pkgEntry, 0, g.PkgCount()),
	}
	for _, a := range g.Atoms() {
		out.Atoms = append(out.Atoms, atomEntry{Atom: a.ID, Parents: a.Parents, Matches: a.Matches})
	}
	for _, id := range g.Pkgs() {
		data, _ := g.Pkg(id)
		out.Pkgs = append(out.Pkgs, pkgEntry{ID: id, Data: data})
	}
	return out
}

// WriteJSON encodes g as indented JSON and writes it to w. Atoms and pkgs
// keep their graph order, so the output is stable for a given graph and can
// be re-imported with [ReadJSON].
func WriteJSON(g *depgraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromGraph(g)); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode json")
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *depgraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// WriteTOML encodes g as [[atoms]] and [[pkgs]] tables.
func WriteTOML(g *depgraph.Graph, w io.Writer) error {
	src := fromGraph(g)
	// TOML has no null, so pkgs without data leave the key out.
	pkgs := make([]map[string]any, 0, len(src.Pkgs))
	for _, p := range src.Pkgs {
		entry := map[string]any{"id": p.ID}
		if p.Data != nil {
			entry["data"] = p.Data
		}
		pkgs = append(pkgs, entry)
	}
	out := struct {
		Atoms []atomEntry      `toml:"atoms"`
		Pkgs  []map[string]any `toml:"pkgs"`
	}{src.Atoms, pkgs}

	if err := toml.NewEncoder(w).Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode toml")
	}
	return nil
}
