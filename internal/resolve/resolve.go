// Package resolve parses CLI package references into provider-scoped
// groups.
//
// The token grammar is:
//
//	token := [provider "#"] item ("," item)*
//
// A token with a provider prefix is explicit: the user asserted identity,
// so its items are taken verbatim and no searching happens. A token
// without a prefix is ambiguous and must be routed through interactive
// disambiguation; there is deliberately no silent default provider in
// the add/remove flows.
package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyProvider is returned for a token like "#vim": a prefix with an
// empty provider name is an error, never silently defaulted.
var ErrEmptyProvider = errors.New("empty provider name before '#'")

// Ref is one parsed reference token.
type Ref struct {
	Provider string   // provider name; empty when the token is ambiguous
	Explicit bool     // true when the token carried a "provider#" prefix
	Items    []string // comma-split, trimmed, empties dropped
}

// ParseToken decomposes a single CLI argument. Splitting is on the first
// '#' only, so nix-style IDs like "nixpkgs#vim" survive inside the item
// list of an explicit token.
func ParseToken(token string) (Ref, error) {
	before, after, found := strings.Cut(token, "#")
	if !found {
		return Ref{Items: SplitItems(token)}, nil
	}

	name := strings.TrimSpace(before)
	if name == "" {
		return Ref{}, fmt.Errorf("parsing %q: %w", token, ErrEmptyProvider)
	}

	return Ref{
		Provider: name,
		Explicit: true,
		Items:    SplitItems(after),
	}, nil
}

// SplitItems splits a comma-separated item list, trimming whitespace and
// dropping empty entries ("a," yields ["a"], never ["a", ""]).
func SplitItems(list string) []string {
	var items []string
	for _, raw := range strings.Split(list, ",") {
		if item := strings.TrimSpace(raw); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Groups accumulates provider-scoped package identifiers for one command
// invocation. Provider order is insertion order; identifiers keep their
// append order within a provider. Scheduling is deduplicated per
// provider so disambiguation never queues the same identifier twice.
type Groups struct {
	order []string
	ids   map[string][]string
	seen  map[string]map[string]bool
}

// NewGroups returns an empty group set.
func NewGroups() *Groups {
	return &Groups{
		ids:  make(map[string][]string),
		seen: make(map[string]map[string]bool),
	}
}

// Add appends identifiers verbatim to a provider's group. Explicit
// references use this path: duplicates the user typed are kept.
func (g *Groups) Add(provider string, ids ...string) {
	if len(ids) == 0 {
		return
	}
	g.touch(provider)
	for _, id := range ids {
		g.ids[provider] = append(g.ids[provider], id)
		g.seen[provider][id] = true
	}
}

// Schedule appends an identifier unless it is already present in the
// provider's group. It reports whether the identifier was added.
func (g *Groups) Schedule(provider, id string) bool {
	if g.Scheduled(provider, id) {
		return false
	}
	g.touch(provider)
	g.ids[provider] = append(g.ids[provider], id)
	g.seen[provider][id] = true
	return true
}

// Scheduled reports whether an identifier is already queued for a provider.
func (g *Groups) Scheduled(provider, id string) bool {
	return g.seen[provider][id]
}

// Providers returns provider names in first-use order.
func (g *Groups) Providers() []string {
	return g.order
}

// IDs returns the identifiers queued for a provider, in append order.
func (g *Groups) IDs(provider string) []string {
	return g.ids[provider]
}

// Empty reports whether nothing has been scheduled.
func (g *Groups) Empty() bool {
	for _, p := range g.order {
		if len(g.ids[p]) > 0 {
			return false
		}
	}
	return true
}

func (g *Groups) touch(provider string) {
	if _, ok := g.seen[provider]; !ok {
		g.seen[provider] = make(map[string]bool)
		g.order = append(g.order, provider)
	}
}
