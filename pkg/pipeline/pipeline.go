// Package pipeline provides the load → export pipeline shared by the CLI and
// the API server.
//
// By centralizing caching, verification, and hook calls here, both entry
// points produce identical DOT for identical graphs.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	g, err := runner.Load(ctx, "graph.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Export(ctx, g, pipeline.Options{Verify: true})
//	os.Stdout.Write(result.DOT)
//
// [Check] inspects a graph without exporting it.
package pipeline

import (
	"time"

	"github.com/matzehuels/depdot/pkg/cache"
	"github.com/matzehuels/depdot/pkg/errors"
	"github.com/matzehuels/depdot/pkg/render/nodelink"
)

// DefaultGraphName is used when Options.GraphName is empty.
const DefaultGraphName = nodelink.DefaultGraphName

// Options configures an export.
// This struct supports JSON serialization for API requests.
type Options struct {
	GraphName string `json:"name,omitempty"`
	Verify    bool   `json:"verify,omitempty"`  // parse-check the result with graphviz
	Refresh   bool   `json:"refresh,omitempty"` // skip the cache lookup

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of an export.
type Result struct {
	// DOT is the exported document.
	DOT []byte

	// GraphHash is the content hash of the graph's canonical JSON form.
	GraphHash string

	// CacheHit is set when DOT came from the cache.
	CacheHit bool

	Stats Stats
}

// Stats contains export statistics.
type Stats struct {
	AtomCount       int
	PkgCount        int
	UnresolvedCount int
	ExportTime      time.Duration
}

// ValidateAndSetDefaults fills in the graph name and validates it.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.GraphName == "" {
		o.GraphName = DefaultGraphName
	}
	if err := errors.ValidateGraphName(o.GraphName); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// KeyOpts returns cache key options for the export.
func (o *Options) KeyOpts() cache.DOTKeyOpts {
	return cache.DOTKeyOpts{
		GraphName: o.GraphName,
		Verified:  o.Verify,
	}
}
