// Package observability lets binaries observe DOT exports, cache traffic,
// and API requests without the libraries depending on a metrics backend.
//
// Libraries report events through the current hook set:
//
//	observability.Export().OnExportStart(ctx, graphName, atoms, pkgs)
//	observability.Cache().OnCacheHit(ctx, observability.KeyDOT)
//
// Binaries install implementations at startup. [LogHooks] ships with the
// package and writes every event to a charmbracelet logger:
//
//	observability.Install(observability.NewLogHooks(logger))
//
// Until something is installed every hook is a no-op.
package observability

import (
	"context"
	"time"
)

// Cache key types passed to [CacheHooks].
const (
	KeyGraph = "graph" // decoded graph files
	KeyDOT   = "dot"   // exported DOT documents
)

// ExportHooks receives events from DOT export.
type ExportHooks interface {
	OnExportStart(ctx context.Context, graphName string, atoms, pkgs int)
	OnExportComplete(ctx context.Context, graphName string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from pipeline cache lookups. keyType is
// [KeyGraph] or [KeyDOT].
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, requestID, method, path string)
	// OnResponse reports the final status and handler latency.
	OnResponse(ctx context.Context, requestID, method, path string, status int, duration time.Duration)
}

// NoopExportHooks ignores export events.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string, int, int) {}
func (NoopExportHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks ignores cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string) {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
}
