package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkgmux-labs/pkgmux/internal/branding"
	"github.com/pkgmux-labs/pkgmux/internal/prompt"
	"github.com/pkgmux-labs/pkgmux/internal/provider"
	"github.com/pkgmux-labs/pkgmux/internal/resolve"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search for packages across all providers",
	Long: `Search every available provider's package index. A query with a provider
prefix ("flatpak#spotify") searches only that provider.`,
	Example: "  " + branding.CLIName() + " search \"web browser\" flatpak#spotify",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	reg := mux.Get()

	var all []provider.SearchResult
	for _, token := range args {
		ref, err := resolve.ParseToken(token)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; skipping.\n", err)
			continue
		}

		if !ref.Explicit {
			all = append(all, reg.SearchAll(cmd.Context(), token)...)
			continue
		}

		// Provider-scoped search; each comma-separated item is its own
		// query term.
		p, err := reg.Resolve(ref.Provider)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; skipping.\n", err)
			continue
		}
		if !p.IsAvailable() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: provider %q is not available on this system; skipping.\n", ref.Provider)
			continue
		}
		for _, term := range ref.Items {
			hits, err := p.Search(cmd.Context(), term)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: search failed in %s: %v\n", ref.Provider, err)
				continue
			}
			for i := range hits {
				hits[i].Provider = ref.Provider
			}
			all = append(all, hits...)
		}
	}

	if len(all) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No packages found.")
		return nil
	}

	if searchJSON {
		data, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PROVIDER\tNAME\tVERSION\tDESCRIPTION")
	for _, r := range all {
		version := r.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Provider, r.Name, version, prompt.Truncate(r.Description))
	}
	return w.Flush()
}
