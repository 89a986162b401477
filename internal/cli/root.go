package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pkgmux-labs/pkgmux/internal/branding"
	"github.com/pkgmux-labs/pkgmux/internal/config"
	"github.com/pkgmux-labs/pkgmux/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	debugFlag    bool
	programLevel = new(slog.LevelVar)
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` drives several package managers (Nix profiles, Flatpak,
Homebrew) through one command surface. Reference packages as plain names,
to be resolved interactively, or pin a backend with a prefix:

  ` + branding.CLIName() + ` add vim flatpak#Spotify nixpkgs#git,ripgrep`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			programLevel.Set(slog.LevelDebug)
		}

		// Skip the update banner for commands that manage their own state.
		name := cmd.Name()
		if cmd.HasParent() && cmd.Parent() != cmd.Root() {
			name = cmd.Parent().Name()
		}
		switch name {
		case "update", "version", "config":
			return
		}

		config.Load()
		if !config.GetBool(config.KeyUpdateCheck) {
			return
		}
		u := updater.New(buildVersion)
		u.CheckAndPrintBanner(cmd.ErrOrStderr(), config.Dir())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: programLevel})))
}

// Execute runs the root command with build info injected via ldflags and
// returns the process exit code. Interruption unwinds any open prompt
// and exits through the dedicated interrupted status with no further
// output; mutations already issued to providers are never rolled back.
func Execute(version, commit, date string) int {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// First touch of the registry; provider-specific subcommands must
	// exist before cobra parses arguments.
	addProviderCommands(rootCmd, mux.Get())

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 130
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
