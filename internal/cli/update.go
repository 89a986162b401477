package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkgmux-labs/pkgmux/internal/branding"
	"github.com/pkgmux-labs/pkgmux/internal/config"
	"github.com/pkgmux-labs/pkgmux/internal/updater"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer release",
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	u := updater.New(buildVersion)

	release, err := u.LatestRelease()
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}

	available, err := updater.IsUpdateAvailable(buildVersion, release.Version)
	if err != nil {
		// Dev builds carry a non-semver version; report the release
		// without a comparison instead of failing the check.
		fmt.Fprintf(cmd.OutOrStdout(), "Latest release: %s (current version %q is not comparable)\n",
			release.Version, buildVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "Release notes: %s\n", release.HTMLURL)
		return nil
	}

	// Record the check so the startup banner stays quiet for a day.
	_ = updater.SaveCache(config.Dir(), &updater.VersionCache{
		LatestVersion:   release.Version,
		CurrentVersion:  buildVersion,
		CheckedAt:       time.Now(),
		UpdateAvailable: available,
	})

	out := cmd.OutOrStdout()
	if !available {
		fmt.Fprintf(out, "%s %s is up to date.\n", branding.DisplayName(), buildVersion)
		return nil
	}

	fmt.Fprintf(out, "Update available: %s -> %s\n", buildVersion, release.Version)
	fmt.Fprintf(out, "Release notes: %s\n", release.HTMLURL)
	return nil
}
