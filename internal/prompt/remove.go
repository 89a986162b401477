package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkgmux-labs/pkgmux/internal/registry"
	"github.com/pkgmux-labs/pkgmux/internal/resolve"
)

// Lister is the candidate source for the remove flavor, in production
// the registry's installed-listing union.
type Lister interface {
	ListAllInstalled(ctx context.Context) []registry.InstalledIn
}

// ResolveRemove disambiguates one unqualified item for removal.
// Candidates are the installed entries whose names contain the query
// (case-insensitive substring, no fuzzy matching). Entries scheduled
// earlier in the same command are filtered out before the menu; if that
// empties the set, a note is printed and no prompt is shown. Besides the
// usual number/skip answers, "a" schedules every shown candidate after a
// second confirmation that requires an exact lowercase "y".
func (s *Session) ResolveRemove(ctx context.Context, item string, src Lister, groups *resolve.Groups) (Outcome, error) {
	var candidates []registry.InstalledIn
	query := strings.ToLower(item)
	for _, in := range src.ListAllInstalled(ctx) {
		if strings.Contains(strings.ToLower(in.Entry.Name), query) {
			candidates = append(candidates, in)
		}
	}

	if len(candidates) == 0 {
		fmt.Fprintf(s.out, "No installed packages match %q.\n", item)
		return NoMatch, nil
	}

	// Drop candidates already queued earlier in this command.
	fresh := candidates[:0]
	for _, c := range candidates {
		if !groups.Scheduled(c.Provider, c.Entry.RemoveID()) {
			fresh = append(fresh, c)
		}
	}
	if len(fresh) == 0 {
		fmt.Fprintf(s.out, "All matches for %q are already selected.\n", item)
		return AlreadySelected, nil
	}

	fmt.Fprintf(s.out, "\nInstalled packages matching %q:\n", item)
	for i, c := range fresh {
		version := c.Entry.Version
		if version == "" {
			version = "unknown"
		}
		fmt.Fprintf(s.out, "  %d) %s (%s %s)\n", i+1, c.Entry.Name, c.Provider, version)
	}
	fmt.Fprintf(s.out, "Select a package to remove (1-%d), 'a' for all shown, or 's' to skip: ", len(fresh))

	answer, err := s.readLine(ctx)
	if err != nil {
		return Skipped, err
	}

	if strings.ToLower(answer) == "a" {
		return s.confirmRemoveAll(ctx, item, fresh, groups)
	}

	idx, skip, err := parseChoice(answer, len(fresh))
	if err != nil {
		fmt.Fprintf(s.out, "%v; dropping %q.\n", err, item)
		return Invalid, nil
	}
	if skip {
		fmt.Fprintf(s.out, "Skipping %q.\n", item)
		return Skipped, nil
	}

	chosen := fresh[idx]
	groups.Schedule(chosen.Provider, chosen.Entry.RemoveID())
	fmt.Fprintf(s.out, "Selected %s from %s.\n", chosen.Entry.Name, chosen.Provider)
	return Selected, nil
}

// confirmRemoveAll runs the second confirmation for the bulk path. Only
// an exact lowercase "y" proceeds; any other answer cancels without
// falling through to a per-item prompt.
func (s *Session) confirmRemoveAll(ctx context.Context, item string, shown []registry.InstalledIn, groups *resolve.Groups) (Outcome, error) {
	fmt.Fprintf(s.out, "Remove all %d shown packages? (y/N): ", len(shown))

	answer, err := s.readLine(ctx)
	if err != nil {
		return Skipped, err
	}
	if answer != "y" {
		fmt.Fprintf(s.out, "Cancelled bulk removal for %q.\n", item)
		return Skipped, nil
	}

	for _, c := range shown {
		groups.Schedule(c.Provider, c.Entry.RemoveID())
	}
	fmt.Fprintf(s.out, "Queued %d packages for removal.\n", len(shown))
	return Selected, nil
}
