package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgmux-labs/pkgmux/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check provider availability and configuration health",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	reg := mux.Get()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Providers:")
	for _, p := range reg.All() {
		status := "not available"
		if p.IsAvailable() {
			status = "ok"
		}
		fmt.Fprintf(out, "  %-10s %s\n", p.Name(), status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Config file: %s\n", config.FilePath())

	result, err := config.ValidateFile(config.FilePath())
	if err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	if result.Valid {
		fmt.Fprintln(out, "  valid")
	} else {
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "  %s: %s\n", issue.Path, issue.Message)
		}
	}

	config.Load()
	def, err := reg.Default(config.Get(config.KeyDefaultProvider))
	if err != nil {
		fmt.Fprintf(out, "\nDefault provider: none (%v)\n", err)
		return nil
	}
	fmt.Fprintf(out, "\nDefault provider: %s\n", def.Name())
	return nil
}
