// Package nixpkgs adapts the Nix profile CLI to the provider capability
// interface. Search and listing scrape `nix ... --json` output; installed
// versions are enriched through the store-path heuristic because
// `nix profile list` does not report them.
package nixpkgs

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkgmux-labs/pkgmux/internal/execx"
	"github.com/pkgmux-labs/pkgmux/internal/provider"
	"github.com/pkgmux-labs/pkgmux/internal/storepath"
)

// Benign stderr fragments: "nothing matched" is not a failure for
// remove/upgrade of a single package.
var benignErrors = []string{
	"does not match any packages",
	"No packages to",
}

// Nixpkgs is the Nix profile adapter.
type Nixpkgs struct {
	runner execx.Runner
}

// New returns the adapter backed by the given runner.
func New(runner execx.Runner) (provider.Provider, error) {
	if runner == nil {
		return nil, fmt.Errorf("nixpkgs: nil runner")
	}
	return &Nixpkgs{runner: runner}, nil
}

func (n *Nixpkgs) Name() string { return "nixpkgs" }

func (n *Nixpkgs) IsAvailable() bool { return execx.LookPath("nix") }

func (n *Nixpkgs) Install(ctx context.Context, ids []string) error {
	for _, id := range ids {
		// Attribute paths from search results already carry a flake ref.
		target := id
		if !strings.Contains(id, "#") {
			target = "nixpkgs#" + id
		}
		_, err := n.runner.Run(ctx, execx.Command{
			Name:   "nix",
			Args:   []string{"profile", "add", "--impure", target},
			Stream: true,
		})
		if err != nil {
			return fmt.Errorf("installing %q: %w", id, err)
		}
	}
	return nil
}

func (n *Nixpkgs) Uninstall(ctx context.Context, ids []string) error {
	for _, id := range ids {
		res, err := n.runner.Run(ctx, execx.Command{
			Name:   "nix",
			Args:   []string{"profile", "remove", id},
			Stream: true,
		})
		if err != nil && !execx.Benign(res, benignErrors...) {
			return fmt.Errorf("removing %q: %w", id, err)
		}
	}
	return nil
}

func (n *Nixpkgs) Upgrade(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		_, err := n.runner.Run(ctx, execx.Command{
			Name:   "nix",
			Args:   []string{"profile", "upgrade", "--impure", "--all"},
			Stream: true,
		})
		if err != nil {
			return fmt.Errorf("upgrading profile: %w", err)
		}
		return nil
	}

	for _, id := range ids {
		res, err := n.runner.Run(ctx, execx.Command{
			Name:   "nix",
			Args:   []string{"profile", "upgrade", "--impure", id},
			Stream: true,
		})
		if err != nil && !execx.Benign(res, benignErrors...) {
			return fmt.Errorf("upgrading %q: %w", id, err)
		}
	}
	return nil
}

// profileList mirrors the JSON from `nix profile list --json`. Newer Nix
// emits elements as an object keyed by install name; older versions used
// an array.
type profileList struct {
	Elements json.RawMessage `json:"elements"`
}

type profileElement struct {
	AttrPath    string   `json:"attrPath"`
	OriginalURL string   `json:"originalUrl"`
	URL         string   `json:"url"`
	StorePaths  []string `json:"storePaths"`
}

func (n *Nixpkgs) ListInstalled(ctx context.Context) ([]provider.InstalledEntry, error) {
	res, err := n.runner.Run(ctx, execx.Command{
		Name: "nix",
		Args: []string{"profile", "list", "--json"},
	})
	if err != nil {
		return nil, fmt.Errorf("listing profile: %w", err)
	}

	var list profileList
	if err := json.Unmarshal([]byte(res.Stdout), &list); err != nil {
		return nil, fmt.Errorf("parsing profile list: %w", err)
	}

	refs := func(storePath string) ([]string, error) {
		return n.references(ctx, storePath)
	}
	var entries []provider.InstalledEntry

	var byName map[string]profileElement
	if err := json.Unmarshal(list.Elements, &byName); err == nil {
		// Sort for a stable listing; JSON object order is lost anyway.
		names := make([]string, 0, len(byName))
		for name := range byName {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			entries = append(entries, elementEntry(name, byName[name], refs))
		}
		return entries, nil
	}

	var asList []profileElement
	if err := json.Unmarshal(list.Elements, &asList); err != nil {
		return nil, fmt.Errorf("parsing profile elements: %w", err)
	}
	for _, el := range asList {
		attr := el.AttrPath
		if attr == "" {
			attr = el.URL
		}
		name := attr
		if i := strings.LastIndex(attr, "."); i >= 0 {
			name = attr[i+1:]
		}
		entries = append(entries, elementEntry(name, el, refs))
	}
	return entries, nil
}

func elementEntry(name string, el profileElement, refs storepath.References) provider.InstalledEntry {
	origin := el.OriginalURL
	if origin == "" {
		origin = el.AttrPath
	}

	version := storepath.Unknown
	if len(el.StorePaths) > 0 {
		version = storepath.Resolve(el.StorePaths[0], name, refs)
	}

	return provider.InstalledEntry{
		Name:    name,
		Version: version,
		Origin:  origin,
	}
}

// references enumerates a store path's transitive reference set via
// nix-store, feeding the version-heuristic fallback. The caller's ctx
// is threaded through so cancelling a listing also cancels these
// per-package queries.
func (n *Nixpkgs) references(ctx context.Context, storePath string) ([]string, error) {
	res, err := n.runner.Run(ctx, execx.Command{
		Name: "nix-store",
		Args: []string{"--query", "--references", storePath},
	})
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, line := range strings.Split(res.Stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}

func (n *Nixpkgs) Search(ctx context.Context, query string) ([]provider.SearchResult, error) {
	res, err := n.runner.Run(ctx, execx.Command{
		Name: "nix",
		Args: []string{"search", "nixpkgs", query, "--json"},
	})
	if err != nil {
		// nix search exits non-zero when nothing matched.
		if res.Stdout == "" {
			return nil, nil
		}
		return nil, fmt.Errorf("searching nixpkgs: %w", err)
	}

	// Keyed by full attribute path, e.g. "legacyPackages.x86_64-linux.git".
	var hits map[string]struct {
		Version     string `json:"version"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &hits); err != nil {
		return nil, fmt.Errorf("parsing search output: %w", err)
	}

	attrs := make([]string, 0, len(hits))
	for attr := range hits {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	var results []provider.SearchResult
	for _, attr := range attrs {
		name := attr
		if i := strings.LastIndex(attr, "."); i >= 0 {
			name = attr[i+1:]
		}
		results = append(results, provider.SearchResult{
			Name:        name,
			ID:          attr,
			Version:     hits[attr].Version,
			Description: hits[attr].Description,
		})
	}
	return results, nil
}

// Commands implements the optional extended-command capability:
// `pkgmux nixpkgs gc` collects garbage in the Nix store.
func (n *Nixpkgs) Commands() []provider.Command {
	return []provider.Command{
		{
			Use:   "gc",
			Short: "Garbage collect the Nix store",
			Run: func(ctx context.Context) error {
				_, err := n.runner.Run(ctx, execx.Command{
					Name:   "nix",
					Args:   []string{"store", "gc"},
					Stream: true,
				})
				return err
			},
		},
	}
}
