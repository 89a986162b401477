// Package registry holds the set of known provider adapters and the
// cross-provider search aggregator.
//
// Adapters are registered through an explicit table rather than runtime
// discovery, so "unregistered provider is an error" falls out of a map
// lookup and registration order is deterministic across platforms. The
// registry is built once per process and immutable afterwards.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkgmux-labs/pkgmux/internal/provider"
)

// ErrUnknownProvider is returned when a referenced name is not registered.
var ErrUnknownProvider = errors.New("unknown provider")

// ErrNoProviders is returned when an operation needs a non-empty registry.
var ErrNoProviders = errors.New("no providers registered")

// Registration pairs a provider name with its constructor. The table is
// kept lexicographic by name so enumeration order never depends on the
// platform.
type Registration struct {
	Name string
	New  func() (provider.Provider, error)
}

// Registry is the immutable set of registered providers.
type Registry struct {
	byName map[string]provider.Provider
	order  []string
}

// Discover instantiates every adapter in the table. A constructor that
// fails, or one whose declared name disagrees with its table entry, is
// skipped with a warning; one broken adapter never blocks the others.
func Discover(table []Registration) *Registry {
	r := &Registry{byName: make(map[string]provider.Provider)}

	for _, reg := range table {
		p, err := reg.New()
		if err != nil {
			slog.Warn("skipping provider", "provider", reg.Name, "error", err)
			continue
		}
		if p.Name() != reg.Name {
			slog.Warn("skipping provider with mismatched name",
				"registered", reg.Name, "declared", p.Name())
			continue
		}
		if _, dup := r.byName[reg.Name]; dup {
			slog.Warn("skipping duplicate provider", "provider", reg.Name)
			continue
		}
		r.byName[reg.Name] = p
		r.order = append(r.order, reg.Name)
	}

	return r
}

// Lookup returns the provider registered under name.
func (r *Registry) Lookup(name string) (provider.Provider, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// All returns every registered provider in registration order,
// irrespective of availability; callers filter as needed.
func (r *Registry) All() []provider.Provider {
	out := make([]provider.Provider, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns the registered provider names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Default resolves the designated default provider for upgrade parsing.
// If the preferred name is absent the first registered provider is used.
// An empty registry is an error.
func (r *Registry) Default(preferred string) (provider.Provider, error) {
	if len(r.order) == 0 {
		return nil, ErrNoProviders
	}
	if p, ok := r.byName[preferred]; ok {
		return p, nil
	}
	return r.byName[r.order[0]], nil
}

// Lazy guards one-time discovery so the registry can be touched from
// more than one code path without racing.
type Lazy struct {
	Table []Registration

	once sync.Once
	reg  *Registry
}

// Get builds the registry on first call and returns the same instance
// afterwards.
func (l *Lazy) Get() *Registry {
	l.once.Do(func() {
		l.reg = Discover(l.Table)
	})
	return l.reg
}

// Resolve is a convenience wrapper that turns a missing name into
// ErrUnknownProvider with the name attached.
func (r *Registry) Resolve(name string) (provider.Provider, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}
