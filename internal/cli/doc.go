// Package cli defines the Cobra command tree for the pkgmux CLI. Each
// file in this package registers one top-level command (add, remove,
// upgrade, list, search, ...) with the root command. Command
// implementations delegate to internal packages for resolution,
// disambiguation, and provider dispatch, and only handle flag parsing,
// I/O formatting, and user interaction.
package cli
