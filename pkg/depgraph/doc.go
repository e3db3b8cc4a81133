// Package depgraph holds the resolver graph that depdot exports.
//
// # Model
//
// A resolver answers requirements ("atoms") with concrete packages
// ("pkgs"). For each atom the graph records:
//
//   - Parents: the pkgs that declared the requirement
//   - Matches: the pkgs that satisfy it (empty when the atom is unresolved)
//
// Pkgs are plain identifiers with optional attached data. Exporters only
// read the identifiers.
//
// # Ordering
//
// Output formats built from the graph must be deterministic, so [Graph]
// remembers insertion order for atoms and pkgs instead of relying on map
// iteration. [Graph.Atoms], [Graph.Pkgs] and [Graph.UnresolvedAtoms] all
// follow that order.
//
// # Usage
//
//	g := depgraph.New()
//	_ = g.AddPkg("app-misc/root-1", nil)
//	_ = g.AddPkg("dev-libs/foo-1.0", nil)
//	_ = g.AddAtom(">=dev-libs/foo-1", []string{"app-misc/root-1"}, []string{"dev-libs/foo-1.0"})
//	_ = g.AddAtom("dev-libs/missing", []string{"app-misc/root-1"}, nil)
//
//	for id := range g.UnresolvedAtoms() {
//	    fmt.Println(id) // dev-libs/missing
//	}
//
// Exporters accept the narrower [View] interface so other resolver graph
// implementations can be plugged in.
package depgraph
