// Package flatpak adapts the Flatpak CLI to the provider capability
// interface. Listing and search use --columns for a stable tab-separated
// layout; a header row is tolerated in case the output lands on a tty.
package flatpak

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkgmux-labs/pkgmux/internal/execx"
	"github.com/pkgmux-labs/pkgmux/internal/provider"
)

// Flatpak is the Flatpak adapter.
type Flatpak struct {
	runner execx.Runner
}

// New returns the adapter backed by the given runner.
func New(runner execx.Runner) (provider.Provider, error) {
	if runner == nil {
		return nil, fmt.Errorf("flatpak: nil runner")
	}
	return &Flatpak{runner: runner}, nil
}

func (f *Flatpak) Name() string { return "flatpak" }

func (f *Flatpak) IsAvailable() bool { return execx.LookPath("flatpak") }

func (f *Flatpak) Install(ctx context.Context, ids []string) error {
	// flatpak install accepts multiple refs; -y suppresses its own
	// confirmation since this tool is already the wrapper.
	args := append([]string{"install", "-y"}, ids...)
	_, err := f.runner.Run(ctx, execx.Command{Name: "flatpak", Args: args, Stream: true})
	if err != nil {
		return fmt.Errorf("installing %s: %w", strings.Join(ids, ", "), err)
	}
	return nil
}

func (f *Flatpak) Uninstall(ctx context.Context, ids []string) error {
	for _, id := range ids {
		_, err := f.runner.Run(ctx, execx.Command{
			Name:   "flatpak",
			Args:   []string{"uninstall", "-y", id},
			Stream: true,
		})
		if err != nil {
			return fmt.Errorf("removing %q: %w", id, err)
		}
	}
	return nil
}

func (f *Flatpak) Upgrade(ctx context.Context, ids []string) error {
	args := []string{"update", "-y"}
	args = append(args, ids...)
	_, err := f.runner.Run(ctx, execx.Command{Name: "flatpak", Args: args, Stream: true})
	if err != nil {
		return fmt.Errorf("updating: %w", err)
	}
	return nil
}

func (f *Flatpak) ListInstalled(ctx context.Context) ([]provider.InstalledEntry, error) {
	res, err := f.runner.Run(ctx, execx.Command{
		Name: "flatpak",
		Args: []string{"list", "--app", "--columns=name,application,version"},
	})
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}

	var entries []provider.InstalledEntry
	for _, parts := range parseColumns(res.Stdout, 2) {
		entry := provider.InstalledEntry{Name: parts[0], ID: parts[1]}
		if len(parts) > 2 {
			entry.Version = parts[2]
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (f *Flatpak) Search(ctx context.Context, query string) ([]provider.SearchResult, error) {
	res, err := f.runner.Run(ctx, execx.Command{
		Name: "flatpak",
		Args: []string{"search", query, "--columns=name,application,description,version"},
	})
	if err != nil {
		return nil, fmt.Errorf("searching flathub: %w", err)
	}
	// "No matches found" arrives on stdout with a zero exit.
	if strings.Contains(res.Stdout, "No matches found") {
		return nil, nil
	}

	var results []provider.SearchResult
	for _, parts := range parseColumns(res.Stdout, 2) {
		result := provider.SearchResult{Name: parts[0], ID: parts[1]}
		if len(parts) > 2 {
			result.Description = parts[2]
		}
		if len(parts) > 3 {
			result.Version = parts[3]
		}
		results = append(results, result)
	}
	return results, nil
}

// parseColumns splits tab-separated --columns output into rows with at
// least minFields fields, skipping blanks and the optional header row.
func parseColumns(out string, minFields int) [][]string {
	var rows [][]string
	for i, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if i == 0 && strings.Contains(line, "Application ID") {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < minFields {
			// Fall back to whitespace splitting when tabs are absent.
			parts = strings.Fields(line)
		}
		if len(parts) < minFields {
			continue
		}
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}
		rows = append(rows, parts)
	}
	return rows
}
