// Package homebrew adapts the Homebrew CLI to the provider capability
// interface. Brew has no JSON search, so listing intersects
// `brew list --installed-on-request` with `brew list --versions`, and
// search parses the "name: description" lines of `brew search --desc`.
package homebrew

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkgmux-labs/pkgmux/internal/execx"
	"github.com/pkgmux-labs/pkgmux/internal/provider"
)

// Homebrew is the Homebrew adapter.
type Homebrew struct {
	runner execx.Runner
}

// New returns the adapter backed by the given runner.
func New(runner execx.Runner) (provider.Provider, error) {
	if runner == nil {
		return nil, fmt.Errorf("homebrew: nil runner")
	}
	return &Homebrew{runner: runner}, nil
}

func (h *Homebrew) Name() string { return "homebrew" }

func (h *Homebrew) IsAvailable() bool { return execx.LookPath("brew") }

func (h *Homebrew) Install(ctx context.Context, ids []string) error {
	args := append([]string{"install"}, ids...)
	_, err := h.runner.Run(ctx, execx.Command{Name: "brew", Args: args, Stream: true})
	if err != nil {
		return fmt.Errorf("installing %s: %w", strings.Join(ids, ", "), err)
	}
	return nil
}

func (h *Homebrew) Uninstall(ctx context.Context, ids []string) error {
	args := append([]string{"uninstall"}, ids...)
	_, err := h.runner.Run(ctx, execx.Command{Name: "brew", Args: args, Stream: true})
	if err != nil {
		return fmt.Errorf("removing %s: %w", strings.Join(ids, ", "), err)
	}
	return nil
}

func (h *Homebrew) Upgrade(ctx context.Context, ids []string) error {
	args := append([]string{"upgrade"}, ids...)
	_, err := h.runner.Run(ctx, execx.Command{Name: "brew", Args: args, Stream: true})
	if err != nil {
		return fmt.Errorf("upgrading: %w", err)
	}
	return nil
}

func (h *Homebrew) ListInstalled(ctx context.Context) ([]provider.InstalledEntry, error) {
	// Leaves only: packages the user asked for, not their dependencies.
	reqRes, err := h.runner.Run(ctx, execx.Command{
		Name: "brew",
		Args: []string{"list", "--installed-on-request"},
	})
	if err != nil {
		return nil, fmt.Errorf("listing requested packages: %w", err)
	}

	requested := make(map[string]bool)
	for _, line := range strings.Split(strings.TrimSpace(reqRes.Stdout), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			requested[name] = true
		}
	}

	verRes, err := h.runner.Run(ctx, execx.Command{
		Name: "brew",
		Args: []string{"list", "--versions"},
	})
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}

	var entries []provider.InstalledEntry
	for _, line := range strings.Split(strings.TrimSpace(verRes.Stdout), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !requested[fields[0]] {
			continue
		}
		entries = append(entries, provider.InstalledEntry{
			Name:    fields[0],
			Version: fields[1],
			ID:      fields[0],
		})
	}
	return entries, nil
}

func (h *Homebrew) Search(ctx context.Context, query string) ([]provider.SearchResult, error) {
	res, err := h.runner.Run(ctx, execx.Command{
		Name: "brew",
		Args: []string{"search", "--desc", query},
	})
	// brew exits non-zero on no matches; that is not a failure.
	if err != nil && res.Stdout == "" {
		return nil, nil
	}

	var results []provider.SearchResult
	for _, line := range strings.Split(strings.TrimSpace(res.Stdout), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "==>") {
			// Section headers (==> Formulae / ==> Casks) carry no data.
			continue
		}

		name, desc, found := strings.Cut(line, ": ")
		if !found {
			name = line
		}
		results = append(results, provider.SearchResult{
			Name:        name,
			ID:          name,
			Description: desc,
		})
	}
	return results, nil
}
