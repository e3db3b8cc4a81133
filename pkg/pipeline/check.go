package pipeline

import (
	"slices"

	"github.com/matzehuels/depdot/pkg/atom"
	"github.com/matzehuels/depdot/pkg/depgraph"
	"github.com/matzehuels/depdot/pkg/errors"
)

// Report is the result of [Check].
type Report struct {
	// Unresolved lists atoms with no matching pkg, in graph order.
	Unresolved []string `json:"unresolved"`

	// Dangling lists atom references to pkgs the graph does not contain.
	Dangling []string `json:"dangling"`

	// Malformed lists atoms that fail to parse. Only filled in strict mode.
	Malformed []MalformedAtom `json:"malformed,omitempty"`
}

// MalformedAtom pairs an atom id with the parse failure.
type MalformedAtom struct {
	Atom   string `json:"atom"`
	Reason string `json:"reason"`
}

// OK reports whether the graph passed. Unresolved atoms are not failures.
func (r Report) OK() bool {
	return len(r.Dangling) == 0 && len(r.Malformed) == 0
}

// Check inspects g. In strict mode every atom id must also parse with
// [atom.Parse].
func Check(g *depgraph.Graph, strict bool) Report {
	rep := Report{
		Unresolved: slices.Collect(g.UnresolvedAtoms()),
		Dangling:   []string{},
	}
	if rep.Unresolved == nil {
		rep.Unresolved = []string{}
	}

	if err := g.Validate(); err != nil {
		for _, e := range unjoin(err) {
			rep.Dangling = append(rep.Dangling, e.Error())
		}
	}

	if strict {
		for _, a := range g.Atoms() {
			if _, err := atom.Parse(a.ID); err != nil {
				rep.Malformed = append(rep.Malformed, MalformedAtom{
					Atom:   a.ID,
					Reason: errors.UserMessage(err),
				})
			}
		}
	}
	return rep
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
