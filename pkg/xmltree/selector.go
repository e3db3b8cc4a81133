package xmltree

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"sync"
)

// Tier orders backends by preference. Lower values win.
type Tier int

const (
	// TierNative is a fast third-party tree library.
	TierNative Tier = iota
	// TierAccelerated is an accelerated standard implementation.
	TierAccelerated
	// TierLegacy is an older third-party library.
	TierLegacy
	// TierStdlib is a pure standard-library implementation.
	TierStdlib
	// TierBundled is the fallback shipped with this package.
	TierBundled
)

func (t Tier) String() string {
	switch t {
	case TierNative:
		return "native"
	case TierAccelerated:
		return "accelerated"
	case TierLegacy:
		return "legacy"
	case TierStdlib:
		return "stdlib"
	case TierBundled:
		return "bundled"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Backend parses and serializes XML trees. The bundled backend defines the
// minimum behavior every backend must match.
type Backend interface {
	Name() string
	Tier() Tier
	Parse(r io.Reader) (*Element, error)
	Serialize(w io.Writer, e *Element) error
}

// Selector binds one backend out of a set of registered candidates.
//
// The binding happens on the first call to [Selector.Backend] and never
// changes afterwards. The best tier wins; within a tier the backend
// registered first wins. A new Selector always holds the bundled backend, so
// binding cannot fail.
type Selector struct {
	mu       sync.Mutex
	backends []Backend
	once     sync.Once
	bound    Backend
}

// NewSelector returns a selector holding only the bundled backend.
func NewSelector() *Selector {
	return &Selector{backends: []Backend{Bundled()}}
}

// Register adds a candidate backend. It panics if the selector is already
// bound or if a backend with the same name is registered.
func (s *Selector) Register(b Backend) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bound != nil {
		panic(fmt.Sprintf("xmltree: Register(%q) after %q was bound", b.Name(), s.bound.Name()))
	}
	for _, existing := range s.backends {
		if existing.Name() == b.Name() {
			panic(fmt.Sprintf("xmltree: backend %q registered twice", b.Name()))
		}
	}
	s.backends = append(s.backends, b)
}

// Backend binds on first use and returns the bound backend.
func (s *Selector) Backend() Backend {
	s.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		best := s.backends[0]
		for _, b := range s.backends[1:] {
			if b.Tier() < best.Tier() {
				best = b
			}
		}
		s.bound = best
	})
	return s.bound
}

// Bound returns the bound backend without triggering the binding.
func (s *Selector) Bound() (Backend, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound, s.bound != nil
}

// Backends returns the registered backends in preference order.
func (s *Selector) Backends() []Backend {
	s.mu.Lock()
	out := slices.Clone(s.backends)
	s.mu.Unlock()

	slices.SortStableFunc(out, func(a, b Backend) int {
		return cmp.Compare(a.Tier(), b.Tier())
	})
	return out
}

var std = NewSelector()

// Register adds a backend to the process-wide selector. Backend packages
// call it from init.
func Register(b Backend) { std.Register(b) }

// Default returns the process-wide backend, binding it on first use.
func Default() Backend { return std.Backend() }

// Backends lists the backends known to the process-wide selector.
func Backends() []Backend { return std.Backends() }

// Bound reports the process-wide backend if it has been bound.
func Bound() (Backend, bool) { return std.Bound() }

// Parse reads one document with the process-wide backend.
func Parse(r io.Reader) (*Element, error) { return Default().Parse(r) }

// Serialize writes e with the process-wide backend.
func Serialize(w io.Writer, e *Element) error { return Default().Serialize(w, e) }
