package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgmux-labs/pkgmux/internal/branding"
	"github.com/pkgmux-labs/pkgmux/internal/prompt"
	"github.com/pkgmux-labs/pkgmux/internal/provider"
	"github.com/pkgmux-labs/pkgmux/internal/resolve"
)

var addCmd = &cobra.Command{
	Use:   "add <package>...",
	Short: "Install packages",
	Long: `Install packages. A reference with a provider prefix ("flatpak#Spotify",
"nixpkgs#vim,ripgrep") is taken verbatim; a bare name is searched across
every available provider and resolved interactively.`,
	Example: "  " + branding.CLIName() + " add vim flatpak#Spotify,\"OBS Studio\"",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	reg := mux.Get()
	groups := resolve.NewGroups()
	session := prompt.NewSession(cmd.InOrStdin(), cmd.OutOrStdout())

	for _, token := range args {
		ref, err := resolve.ParseToken(token)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; skipping.\n", err)
			continue
		}

		if ref.Explicit {
			if len(ref.Items) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: no packages named after %q.\n", ref.Provider+"#")
				continue
			}
			groups.Add(ref.Provider, ref.Items...)
			continue
		}

		// Ambiguous items go through interactive disambiguation; there
		// is no silent default provider for add.
		for _, item := range ref.Items {
			if !canPrompt(cmd.InOrStdin()) {
				fmt.Fprintf(cmd.ErrOrStderr(),
					"Warning: cannot resolve %q without a terminal; qualify it as provider#name.\n", item)
				continue
			}
			if _, err := session.ResolveInstall(cmd.Context(), item, reg, groups); err != nil {
				return err
			}
		}
	}

	if groups.Empty() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: no packages selected for installation.")
		return nil
	}

	return dispatchGroups(cmd.Context(), cmd.ErrOrStderr(), reg, groups, "Installing",
		func(ctx context.Context, p provider.Provider, ids []string) error {
			return p.Install(ctx, ids)
		})
}
