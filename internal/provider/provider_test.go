package provider

import "testing"

func TestSearchResultInstallID(t *testing.T) {
	withID := SearchResult{Name: "Spotify", ID: "com.spotify.Client"}
	if got := withID.InstallID(); got != "com.spotify.Client" {
		t.Errorf("expected the native ID, got %q", got)
	}
	nameOnly := SearchResult{Name: "jq"}
	if got := nameOnly.InstallID(); got != "jq" {
		t.Errorf("expected the name fallback, got %q", got)
	}
}

func TestInstalledEntryRemoveID(t *testing.T) {
	withID := InstalledEntry{Name: "Spotify", ID: "com.spotify.Client"}
	if got := withID.RemoveID(); got != "com.spotify.Client" {
		t.Errorf("expected the native ID, got %q", got)
	}
	nameOnly := InstalledEntry{Name: "vim"}
	if got := nameOnly.RemoveID(); got != "vim" {
		t.Errorf("expected the name fallback, got %q", got)
	}
}
