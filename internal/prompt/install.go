package prompt

import (
	"context"
	"fmt"

	"github.com/pkgmux-labs/pkgmux/internal/provider"
	"github.com/pkgmux-labs/pkgmux/internal/resolve"
)

// Searcher is the candidate source for the install flavor, in
// production the registry's cross-provider aggregator.
type Searcher interface {
	SearchAll(ctx context.Context, query string) []provider.SearchResult
}

// ResolveInstall disambiguates one unqualified item for installation.
// It searches every available provider, presents the hits, and schedules
// the chosen result's native ID (falling back to its name) under the
// chosen provider's group. Every outcome besides an I/O error is
// non-fatal to the surrounding command loop.
func (s *Session) ResolveInstall(ctx context.Context, item string, src Searcher, groups *resolve.Groups) (Outcome, error) {
	results := src.SearchAll(ctx, item)
	if len(results) == 0 {
		fmt.Fprintf(s.out, "No packages found for %q.\n", item)
		return NoMatch, nil
	}

	fmt.Fprintf(s.out, "\nFound %d matches for %q:\n", len(results), item)
	for i, res := range results {
		fmt.Fprintf(s.out, "  %d) %s (%s %s)\n", i+1, res.Name, res.Provider, res.Version)
		if res.Description != "" {
			fmt.Fprintf(s.out, "     %s\n", Truncate(res.Description))
		}
	}
	fmt.Fprintf(s.out, "Select a package to add (1-%d) or 's' to skip: ", len(results))

	answer, err := s.readLine(ctx)
	if err != nil {
		return Skipped, err
	}

	idx, skip, err := parseChoice(answer, len(results))
	if err != nil {
		fmt.Fprintf(s.out, "%v; dropping %q.\n", err, item)
		return Invalid, nil
	}
	if skip {
		fmt.Fprintf(s.out, "Skipping %q.\n", item)
		return Skipped, nil
	}

	chosen := results[idx]
	groups.Schedule(chosen.Provider, chosen.InstallID())
	fmt.Fprintf(s.out, "Selected %s from %s.\n", chosen.Name, chosen.Provider)
	return Selected, nil
}
