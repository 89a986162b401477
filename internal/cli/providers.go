package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgmux-labs/pkgmux/internal/execx"
	"github.com/pkgmux-labs/pkgmux/internal/provider"
	"github.com/pkgmux-labs/pkgmux/internal/providers/flatpak"
	"github.com/pkgmux-labs/pkgmux/internal/providers/homebrew"
	"github.com/pkgmux-labs/pkgmux/internal/providers/nixpkgs"
	"github.com/pkgmux-labs/pkgmux/internal/registry"
)

// mux guards one-time construction of the provider registry, so every
// command that touches it gets the same instance no matter which code
// path gets there first.
var mux = &registry.Lazy{Table: defaultTable(execx.NewRunner())}

// defaultTable is the explicit registration table, lexicographic by
// provider name so enumeration order is deterministic everywhere.
func defaultTable(runner execx.Runner) []registry.Registration {
	return []registry.Registration{
		{Name: "flatpak", New: func() (provider.Provider, error) { return flatpak.New(runner) }},
		{Name: "homebrew", New: func() (provider.Provider, error) { return homebrew.New(runner) }},
		{Name: "nixpkgs", New: func() (provider.Provider, error) { return nixpkgs.New(runner) }},
	}
}

// addProviderCommands probes every registered provider for the optional
// extended-command capability and mounts the extras it declares, e.g.
// `pkgmux nixpkgs gc`.
func addProviderCommands(root *cobra.Command, reg *registry.Registry) {
	for _, p := range reg.All() {
		ext, ok := p.(provider.ExtendedCommands)
		if !ok {
			continue
		}

		parent := &cobra.Command{
			Use:   p.Name(),
			Short: fmt.Sprintf("%s-specific operations", p.Name()),
		}
		for _, sub := range ext.Commands() {
			parent.AddCommand(&cobra.Command{
				Use:   sub.Use,
				Short: sub.Short,
				RunE: func(cmd *cobra.Command, args []string) error {
					if !p.IsAvailable() {
						return fmt.Errorf("provider %q is not available on this system", p.Name())
					}
					return sub.Run(cmd.Context())
				},
			})
		}
		root.AddCommand(parent)
	}
}
