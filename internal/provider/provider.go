// Package provider defines the capability contract every package-manager
// backend must satisfy, plus the result shapes shared across the CLI.
// Concrete adapters live under internal/providers; the registry, resolver,
// and prompt layers only ever see these interfaces.
package provider

import "context"

// Provider is the capability interface for one package-manager backend.
//
// Name doubles as the registry key and the "#"-prefix token in package
// references, so it must be a stable lowercase identifier. IsAvailable
// reflects live system state and is re-checked on every call site; it is
// never cached. Mutating operations own their subprocess execution and
// exit-code interpretation; callers never roll back a prior successful
// call because a later one failed.
type Provider interface {
	// Name returns the unique lowercase identifier (e.g., "nixpkgs").
	Name() string

	// IsAvailable reports whether the backend is installed and usable
	// on this system. Cheap enough to call per operation.
	IsAvailable() bool

	// Install installs packages by provider-native identifier
	// (attribute path, application ID, formula name).
	Install(ctx context.Context, ids []string) error

	// Uninstall removes packages by provider-native identifier.
	Uninstall(ctx context.Context, ids []string) error

	// Upgrade upgrades the given packages. A nil or empty slice means
	// "upgrade everything this provider manages".
	Upgrade(ctx context.Context, ids []string) error

	// ListInstalled returns the installed packages this provider manages.
	ListInstalled(ctx context.Context) ([]InstalledEntry, error)

	// Search queries the backend's package index. The Provider field of
	// each result is filled in by the caller, not the adapter.
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// ExtendedCommands is an optional secondary capability. A provider that
// implements it contributes its own subcommands to the CLI (e.g.,
// `pkgmux nixpkgs gc`). Callers probe for it with a type assertion.
type ExtendedCommands interface {
	// Commands returns the provider-specific subcommands.
	Commands() []Command
}

// Command describes one provider-specific subcommand.
type Command struct {
	Use   string
	Short string
	Run   func(ctx context.Context) error
}

// SearchResult is one hit from a provider's package index.
type SearchResult struct {
	Name        string `json:"name"`
	ID          string `json:"id,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Provider    string `json:"provider"`
}

// InstallID returns the identifier to schedule for installation: the
// native ID when the backend has one, the display name otherwise.
func (r SearchResult) InstallID() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Name
}

// InstalledEntry is one installed package reported by a provider.
type InstalledEntry struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	ID      string `json:"id,omitempty"`
	Origin  string `json:"origin,omitempty"`
}

// RemoveID returns the identifier to schedule for removal.
func (e InstalledEntry) RemoveID() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Name
}
