package observability

import (
	"sync"
	"sync/atomic"
)

// hookSet is replaced wholesale on every change so readers never lock.
type hookSet struct {
	export ExportHooks
	cache  CacheHooks
	http   HTTPHooks
}

var (
	current  atomic.Pointer[hookSet]
	updateMu sync.Mutex
)

func init() { Reset() }

func noopSet() *hookSet {
	return &hookSet{
		export: NoopExportHooks{},
		cache:  NoopCacheHooks{},
		http:   NoopHTTPHooks{},
	}
}

func update(fn func(*hookSet)) {
	updateMu.Lock()
	defer updateMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetExportHooks installs h for export events. nil is ignored.
func SetExportHooks(h ExportHooks) {
	if h != nil {
		update(func(s *hookSet) { s.export = h })
	}
}

// SetCacheHooks installs h for cache events. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks installs h for HTTP events. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(s *hookSet) { s.http = h })
	}
}

// Install registers v for every hook interface it implements.
func Install(v any) {
	update(func(s *hookSet) {
		if h, ok := v.(ExportHooks); ok {
			s.export = h
		}
		if h, ok := v.(CacheHooks); ok {
			s.cache = h
		}
		if h, ok := v.(HTTPHooks); ok {
			s.http = h
		}
	})
}

// Export returns the current export hooks.
func Export() ExportHooks { return current.Load().export }

// Cache returns the current cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the current HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores the no-op hooks.
func Reset() {
	updateMu.Lock()
	defer updateMu.Unlock()
	current.Store(noopSet())
}
