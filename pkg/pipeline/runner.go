package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depdot/pkg/cache"
	"github.com/matzehuels/depdot/pkg/depgraph"
	pkgio "github.com/matzehuels/depdot/pkg/io"
	"github.com/matzehuels/depdot/pkg/observability"
	"github.com/matzehuels/depdot/pkg/render/nodelink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner holds no results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL bounds cached DOT entries. Zero means cache.TTLDOT.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load imports a graph file (.json or .toml). The decoded graph is cached
// as canonical JSON under the hash of the file's contents, so repeated
// loads of an unchanged file skip the original decoder.
func (r *Runner) Load(ctx context.Context, path string) (*depgraph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := pkgio.CheckFormat(path); err != nil {
		return nil, err
	}
	start := time.Now()
	data, err := pkgio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	key := r.Keyer.GraphKey(cache.Hash(append([]byte(ext+"\x00"), data...)))

	if cached, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	} else if hit {
		if g, err := pkgio.ReadJSON(bytes.NewReader(cached)); err == nil {
			observability.Cache().OnCacheHit(ctx, observability.KeyGraph)
			r.logLoaded(path, g, start, true)
			return g, nil
		}
		r.Logger.Warn("discarding unreadable cached graph", "path", path)
	} else {
		observability.Cache().OnCacheMiss(ctx, observability.KeyGraph)
	}

	g, err := pkgio.Decode(path, data)
	if err != nil {
		return nil, err
	}

	var canonical bytes.Buffer
	if err := pkgio.WriteJSON(g, &canonical); err == nil {
		if err := r.Cache.Set(ctx, key, canonical.Bytes(), cache.TTLGraph); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, observability.KeyGraph, canonical.Len())
		}
	}
	r.logLoaded(path, g, start, false)
	return g, nil
}

func (r *Runner) logLoaded(path string, g *depgraph.Graph, start time.Time, cached bool) {
	r.Logger.Debug("loaded graph",
		"path", path,
		"atoms", g.AtomCount(),
		"pkgs", g.PkgCount(),
		"cached", cached,
		"duration", time.Since(start))
}

// Export renders g as DOT, consulting the cache first unless opts.Refresh
// is set. Cache failures are logged and otherwise ignored.
func (r *Runner) Export(ctx context.Context, g *depgraph.Graph, opts Options) (res *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Export()
	hooks.OnExportStart(ctx, opts.GraphName, g.AtomCount(), g.PkgCount())
	defer func() {
		size := 0
		if res != nil {
			size = len(res.DOT)
		}
		hooks.OnExportComplete(ctx, opts.GraphName, size, time.Since(start), err)
	}()

	var canonical bytes.Buffer
	if err := pkgio.WriteJSON(g, &canonical); err != nil {
		return nil, err
	}
	res = &Result{
		GraphHash: cache.Hash(canonical.Bytes()),
		Stats: Stats{
			AtomCount:       g.AtomCount(),
			PkgCount:        g.PkgCount(),
			UnresolvedCount: countUnresolved(g),
		},
	}
	key := r.Keyer.DOTKey(res.GraphHash, opts.KeyOpts())

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache read failed", "error", err)
		case hit:
			observability.Cache().OnCacheHit(ctx, observability.KeyDOT)
			res.DOT = data
			res.CacheHit = true
			res.Stats.ExportTime = time.Since(start)
			r.Logger.Debug("dot cache hit", "hash", res.GraphHash[:12])
			return res, nil
		default:
			observability.Cache().OnCacheMiss(ctx, observability.KeyDOT)
		}
	}

	var out bytes.Buffer
	if err := nodelink.Write(g, &out, opts.GraphName); err != nil {
		return nil, err
	}
	if opts.Verify {
		if err := nodelink.Verify(out.Bytes()); err != nil {
			return nil, err
		}
	}
	res.DOT = out.Bytes()
	res.Stats.ExportTime = time.Since(start)

	ttl := r.TTL
	if ttl == 0 {
		ttl = cache.TTLDOT
	}
	if err := r.Cache.Set(ctx, key, res.DOT, ttl); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, observability.KeyDOT, len(res.DOT))
	}

	r.Logger.Info("exported graph",
		"name", opts.GraphName,
		"atoms", res.Stats.AtomCount,
		"pkgs", res.Stats.PkgCount,
		"unresolved", res.Stats.UnresolvedCount,
		"duration", res.Stats.ExportTime)
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func countUnresolved(g depgraph.View) int {
	n := 0
	for range g.UnresolvedAtoms() {
		n++
	}
	return n
}
