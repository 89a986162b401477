package registry

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pkgmux-labs/pkgmux/internal/provider"
)

// maxConcurrentSearches bounds the aggregator fan-out.
const maxConcurrentSearches = 4

// SearchAll fans a query out to every available provider and merges the
// hits in registration order, keeping each provider's own internal
// ordering. A provider whose search fails is skipped with a warning; the
// rest of the batch is unaffected. The Provider field of every result is
// populated here, not by the adapters.
func (r *Registry) SearchAll(ctx context.Context, query string) []provider.SearchResult {
	providers := r.All()
	slots := make([][]provider.SearchResult, len(providers))

	var g errgroup.Group
	g.SetLimit(maxConcurrentSearches)

	for i, p := range providers {
		i, p := i, p
		if !p.IsAvailable() {
			continue
		}
		g.Go(func() error {
			hits, err := p.Search(ctx, query)
			if err != nil {
				// A failing worker is converted to a skip at its own
				// boundary; siblings keep running.
				slog.Warn("search failed", "provider", p.Name(), "error", err)
				return nil
			}
			for j := range hits {
				hits[j].Provider = p.Name()
			}
			slots[i] = hits
			return nil
		})
	}
	_ = g.Wait()

	var merged []provider.SearchResult
	for _, hits := range slots {
		merged = append(merged, hits...)
	}
	return merged
}

// ListAllInstalled unions ListInstalled across every available provider,
// in registration order, tagging each entry with its origin provider.
// One provider's failure is logged and skipped.
func (r *Registry) ListAllInstalled(ctx context.Context) []InstalledIn {
	var out []InstalledIn
	for _, p := range r.All() {
		if !p.IsAvailable() {
			continue
		}
		entries, err := p.ListInstalled(ctx)
		if err != nil {
			slog.Warn("listing installed packages failed", "provider", p.Name(), "error", err)
			continue
		}
		for _, e := range entries {
			out = append(out, InstalledIn{Provider: p.Name(), Entry: e})
		}
	}
	return out
}

// InstalledIn is an installed entry labeled with its origin provider.
type InstalledIn struct {
	Provider string
	Entry    provider.InstalledEntry
}
