package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkgmux-labs/pkgmux/internal/registry"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list [provider]",
	Short: "List installed packages",
	Long:  `List installed packages across every available provider, or one provider by name.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents one installed package for display.
type listEntry struct {
	Provider string `json:"provider"`
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	ID       string `json:"id,omitempty"`
	Origin   string `json:"origin,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	reg := mux.Get()

	var installed []registry.InstalledIn
	if len(args) == 1 {
		p, err := reg.Resolve(args[0])
		if err != nil {
			return err
		}
		if !p.IsAvailable() {
			return fmt.Errorf("provider %q is not available on this system", args[0])
		}
		entries, err := p.ListInstalled(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing %s packages: %w", args[0], err)
		}
		for _, e := range entries {
			installed = append(installed, registry.InstalledIn{Provider: args[0], Entry: e})
		}
	} else {
		installed = reg.ListAllInstalled(cmd.Context())
	}

	if len(installed) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No packages installed.")
		return nil
	}

	entries := make([]listEntry, 0, len(installed))
	for _, in := range installed {
		entries = append(entries, listEntry{
			Provider: in.Provider,
			Name:     in.Entry.Name,
			Version:  in.Entry.Version,
			ID:       in.Entry.ID,
			Origin:   in.Entry.Origin,
		})
	}

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PROVIDER\tNAME\tVERSION\tORIGIN")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		origin := e.Origin
		if origin == "" {
			origin = e.ID
		}
		if origin == "" {
			origin = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Provider, e.Name, version, origin)
	}
	return w.Flush()
}
