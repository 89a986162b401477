package cli

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/pkgmux-labs/pkgmux/internal/provider"
	"github.com/pkgmux-labs/pkgmux/internal/registry"
)

// scriptedProvider is a fully in-memory backend for command-level tests.
type scriptedProvider struct {
	name      string
	available bool
	hits      []provider.SearchResult
	installed []provider.InstalledEntry

	installs   [][]string
	uninstalls [][]string
	upgrades   [][]string
	opErr      error
}

func (s *scriptedProvider) Name() string      { return s.name }
func (s *scriptedProvider) IsAvailable() bool { return s.available }

func (s *scriptedProvider) Install(_ context.Context, ids []string) error {
	s.installs = append(s.installs, ids)
	return s.opErr
}

func (s *scriptedProvider) Uninstall(_ context.Context, ids []string) error {
	s.uninstalls = append(s.uninstalls, ids)
	return s.opErr
}

func (s *scriptedProvider) Upgrade(_ context.Context, ids []string) error {
	s.upgrades = append(s.upgrades, ids)
	return s.opErr
}

func (s *scriptedProvider) ListInstalled(context.Context) ([]provider.InstalledEntry, error) {
	return s.installed, nil
}

func (s *scriptedProvider) Search(context.Context, string) ([]provider.SearchResult, error) {
	return s.hits, nil
}

// swapRegistry replaces the process registry for one test.
func swapRegistry(t *testing.T, providers ...*scriptedProvider) {
	t.Helper()
	var table []registry.Registration
	for _, p := range providers {
		p := p
		table = append(table, registry.Registration{
			Name: p.name,
			New:  func() (provider.Provider, error) { return p, nil },
		})
	}
	old := mux
	mux = &registry.Lazy{Table: table}
	t.Cleanup(func() { mux = old })
}

// newTestCmd builds a throwaway command with scripted I/O.
func newTestCmd(t *testing.T, input string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetContext(context.Background())
	return cmd, &out, &errOut
}

func TestRunAdd_ExplicitAndDisambiguatedTokens(t *testing.T) {
	fp := &scriptedProvider{name: "flatpak", available: true}
	nix := &scriptedProvider{name: "nixpkgs", available: true, hits: []provider.SearchResult{
		{Name: "vim", ID: "nixpkgs#vim", Version: "9.1"},
	}}
	swapRegistry(t, fp, nix)

	// "1" answers the menu for the bare "vim" token.
	cmd, _, _ := newTestCmd(t, "1\n")
	if err := runAdd(cmd, []string{"flatpak#Spotify,OBS Studio", "vim"}); err != nil {
		t.Fatalf("runAdd: %v", err)
	}

	if !reflect.DeepEqual(fp.installs, [][]string{{"Spotify", "OBS Studio"}}) {
		t.Errorf("unexpected flatpak installs: %v", fp.installs)
	}
	if !reflect.DeepEqual(nix.installs, [][]string{{"nixpkgs#vim"}}) {
		t.Errorf("unexpected nixpkgs installs: %v", nix.installs)
	}
}

func TestRunAdd_UnknownProviderGroupSkippedOthersProceed(t *testing.T) {
	fp := &scriptedProvider{name: "flatpak", available: true}
	swapRegistry(t, fp)

	cmd, _, errOut := newTestCmd(t, "")
	if err := runAdd(cmd, []string{"chocolatey#vlc", "flatpak#Spotify"}); err != nil {
		t.Fatalf("runAdd: %v", err)
	}

	if !strings.Contains(errOut.String(), "unknown provider") {
		t.Errorf("expected an unknown-provider warning, got:\n%s", errOut.String())
	}
	if !reflect.DeepEqual(fp.installs, [][]string{{"Spotify"}}) {
		t.Errorf("flatpak group must still dispatch, got %v", fp.installs)
	}
}

func TestRunAdd_MutationFailureStopsLaterGroups(t *testing.T) {
	fp := &scriptedProvider{name: "flatpak", available: true, opErr: errors.New("network down")}
	nix := &scriptedProvider{name: "nixpkgs", available: true}
	swapRegistry(t, fp, nix)

	cmd, _, _ := newTestCmd(t, "")
	err := runAdd(cmd, []string{"flatpak#Spotify", "nixpkgs#vim"})
	if err == nil {
		t.Fatal("expected the install failure to propagate")
	}
	if len(nix.installs) != 0 {
		t.Errorf("groups after a failure must not dispatch, got %v", nix.installs)
	}
}

func TestRunAdd_NothingSelectedIsCleanExit(t *testing.T) {
	swapRegistry(t, &scriptedProvider{name: "flatpak", available: true})

	cmd, _, errOut := newTestCmd(t, "")
	if err := runAdd(cmd, []string{"flatpak#"}); err != nil {
		t.Fatalf("runAdd: %v", err)
	}
	if !strings.Contains(errOut.String(), "no packages selected") {
		t.Errorf("expected an empty-selection warning, got:\n%s", errOut.String())
	}
}

func TestRunRemove_DisambiguatesAgainstInstalled(t *testing.T) {
	fp := &scriptedProvider{name: "flatpak", available: true, installed: []provider.InstalledEntry{
		{Name: "Spotify", ID: "com.spotify.Client", Version: "1.2.31"},
	}}
	swapRegistry(t, fp)

	cmd, _, _ := newTestCmd(t, "1\n")
	if err := runRemove(cmd, []string{"spotify"}); err != nil {
		t.Fatalf("runRemove: %v", err)
	}
	if !reflect.DeepEqual(fp.uninstalls, [][]string{{"com.spotify.Client"}}) {
		t.Errorf("unexpected uninstalls: %v", fp.uninstalls)
	}
}

func TestRunUpgrade_NoArgsUpgradesEveryAvailableProvider(t *testing.T) {
	fp := &scriptedProvider{name: "flatpak", available: true}
	nix := &scriptedProvider{name: "nixpkgs", available: true}
	off := &scriptedProvider{name: "homebrew", available: false}
	swapRegistry(t, fp, off, nix)

	cmd, _, _ := newTestCmd(t, "")
	if err := runUpgrade(cmd, nil); err != nil {
		t.Fatalf("runUpgrade: %v", err)
	}

	if len(fp.upgrades) != 1 || fp.upgrades[0] != nil {
		t.Errorf("expected one full flatpak upgrade, got %v", fp.upgrades)
	}
	if len(nix.upgrades) != 1 {
		t.Errorf("expected one full nixpkgs upgrade, got %v", nix.upgrades)
	}
	if len(off.upgrades) != 0 {
		t.Errorf("unavailable provider must be skipped, got %v", off.upgrades)
	}
}

func TestRunUpgrade_ProviderNameTokenAndQualifiedItem(t *testing.T) {
	fp := &scriptedProvider{name: "flatpak", available: true}
	nix := &scriptedProvider{name: "nixpkgs", available: true}
	swapRegistry(t, fp, nix)

	cmd, _, _ := newTestCmd(t, "")
	if err := runUpgrade(cmd, []string{"flatpak", "nixpkgs#vim"}); err != nil {
		t.Fatalf("runUpgrade: %v", err)
	}

	if len(fp.upgrades) != 1 || fp.upgrades[0] != nil {
		t.Errorf("expected a whole-provider flatpak upgrade, got %v", fp.upgrades)
	}
	if !reflect.DeepEqual(nix.upgrades, [][]string{{"vim"}}) {
		t.Errorf("unexpected nixpkgs upgrades: %v", nix.upgrades)
	}
}
