package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgmux-labs/pkgmux/internal/branding"
	"github.com/pkgmux-labs/pkgmux/internal/config"
	"github.com/pkgmux-labs/pkgmux/internal/provider"
	"github.com/pkgmux-labs/pkgmux/internal/resolve"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [package]...",
	Short: "Upgrade installed packages",
	Long: `Upgrade packages. With no arguments every available provider upgrades
everything it manages. A bare provider name ("flatpak") upgrades that
whole provider. Unqualified package names are assigned to the configured
default provider (` + config.KeyDefaultProvider + `).`,
	Example: "  " + branding.CLIName() + " upgrade\n" +
		"  " + branding.CLIName() + " upgrade flatpak nixpkgs#vim",
	RunE: runUpgrade,
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	reg := mux.Get()

	// No arguments: full upgrade on every available provider.
	if len(args) == 0 {
		for _, p := range reg.All() {
			if !p.IsAvailable() {
				continue
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Upgrading %s...\n", p.Name())
			if err := p.Upgrade(cmd.Context(), nil); err != nil {
				return fmt.Errorf("upgrading %s: %w", p.Name(), err)
			}
		}
		return nil
	}

	config.Load()
	def, err := reg.Default(config.Get(config.KeyDefaultProvider))
	if err != nil {
		return fmt.Errorf("resolving default provider: %w", err)
	}

	isProvider := func(name string) bool {
		_, ok := reg.Lookup(name)
		return ok
	}
	fullProviders, groups, parseErrs := resolve.Upgrade(args, isProvider, def.Name())
	for _, perr := range parseErrs {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; skipping.\n", perr)
	}

	// Whole-provider upgrades first, in the order given.
	for _, name := range fullProviders {
		p, _ := reg.Lookup(name)
		if !p.IsAvailable() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: provider %q is not available on this system; skipping.\n", name)
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Upgrading everything in %s...\n", name)
		if err := p.Upgrade(cmd.Context(), nil); err != nil {
			return fmt.Errorf("upgrading %s: %w", name, err)
		}
	}

	if groups.Empty() && len(fullProviders) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: nothing to upgrade.")
		return nil
	}

	return dispatchGroups(cmd.Context(), cmd.ErrOrStderr(), reg, groups, "Upgrading",
		func(ctx context.Context, p provider.Provider, ids []string) error {
			return p.Upgrade(ctx, ids)
		})
}
