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

var removeCmd = &cobra.Command{
	Use:   "remove <package>...",
	Short: "Remove installed packages",
	Long: `Remove installed packages. A reference with a provider prefix is taken
verbatim; a bare name is matched against the installed packages of every
available provider and resolved interactively.`,
	Example: "  " + branding.CLIName() + " remove spotify nixpkgs#vim",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
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

		for _, item := range ref.Items {
			if !canPrompt(cmd.InOrStdin()) {
				fmt.Fprintf(cmd.ErrOrStderr(),
					"Warning: cannot resolve %q without a terminal; qualify it as provider#name.\n", item)
				continue
			}
			if _, err := session.ResolveRemove(cmd.Context(), item, reg, groups); err != nil {
				return err
			}
		}
	}

	if groups.Empty() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: no packages selected for removal.")
		return nil
	}

	return dispatchGroups(cmd.Context(), cmd.ErrOrStderr(), reg, groups, "Removing",
		func(ctx context.Context, p provider.Provider, ids []string) error {
			return p.Uninstall(ctx, ids)
		})
}
