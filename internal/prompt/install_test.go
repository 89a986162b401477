package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pkgmux-labs/pkgmux/internal/provider"
	"github.com/pkgmux-labs/pkgmux/internal/resolve"
)

type fixedSearcher struct {
	hits []provider.SearchResult
}

func (f fixedSearcher) SearchAll(ctx context.Context, query string) []provider.SearchResult {
	return f.hits
}

func spotifyHits() fixedSearcher {
	return fixedSearcher{hits: []provider.SearchResult{
		{Name: "Spotify", ID: "com.spotify.Client", Provider: "flatpak", Version: "1.2.31",
			Description: "Music for everyone"},
		{Name: "spotify", ID: "nixpkgs#spotify", Provider: "nixpkgs", Version: "1.2.31"},
	}}
}

func newScripted(input string) (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	return NewSession(strings.NewReader(input), &out), &out
}

func TestResolveInstall_SelectSchedulesNativeID(t *testing.T) {
	session, out := newScripted("2\n")
	groups := resolve.NewGroups()

	outcome, err := session.ResolveInstall(context.Background(), "spotify", spotifyHits(), groups)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != Selected {
		t.Fatalf("expected Selected, got %v", outcome)
	}
	if got := groups.IDs("nixpkgs"); len(got) != 1 || got[0] != "nixpkgs#spotify" {
		t.Errorf("expected nixpkgs#spotify scheduled, got %v", got)
	}
	if !strings.Contains(out.String(), "Found 2 matches") {
		t.Errorf("menu missing from output:\n%s", out.String())
	}
}

func TestResolveInstall_SkipLeavesGroupsUntouched(t *testing.T) {
	for _, answer := range []string{"s\n", "q\n", "S\n"} {
		session, _ := newScripted(answer)
		groups := resolve.NewGroups()

		outcome, err := session.ResolveInstall(context.Background(), "spotify", spotifyHits(), groups)
		if err != nil {
			t.Fatalf("answer %q: unexpected error: %v", answer, err)
		}
		if outcome != Skipped {
			t.Errorf("answer %q: expected Skipped, got %v", answer, outcome)
		}
		if !groups.Empty() {
			t.Errorf("answer %q: expected empty groups", answer)
		}
	}
}

func TestResolveInstall_InvalidAnswerDropsItem(t *testing.T) {
	for _, answer := range []string{"0\n", "3\n", "banana\n"} {
		session, out := newScripted(answer)
		groups := resolve.NewGroups()

		outcome, err := session.ResolveInstall(context.Background(), "spotify", spotifyHits(), groups)
		if err != nil {
			t.Fatalf("answer %q: unexpected error: %v", answer, err)
		}
		if outcome != Invalid {
			t.Errorf("answer %q: expected Invalid, got %v", answer, outcome)
		}
		if !groups.Empty() {
			t.Errorf("answer %q: expected empty groups", answer)
		}
		if !strings.Contains(out.String(), "dropping") {
			t.Errorf("answer %q: expected a drop notice, got:\n%s", answer, out.String())
		}
	}
}

func TestResolveInstall_NoMatchesPrintsNoticeWithoutPrompting(t *testing.T) {
	// An empty input reader proves no answer was read.
	session, out := newScripted("")
	groups := resolve.NewGroups()

	outcome, err := session.ResolveInstall(context.Background(), "nosuchpkg", fixedSearcher{}, groups)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != NoMatch {
		t.Fatalf("expected NoMatch, got %v", outcome)
	}
	if !strings.Contains(out.String(), "No packages found") {
		t.Errorf("expected a no-match notice, got:\n%s", out.String())
	}
}

func TestResolveInstall_ExhaustedInputSurfacesError(t *testing.T) {
	session, _ := newScripted("")
	_, err := session.ResolveInstall(context.Background(), "spotify", spotifyHits(), resolve.NewGroups())
	if err == nil {
		t.Fatal("expected an error when the reader runs dry")
	}
}

// stuckReader blocks until released, standing in for a terminal where
// the user never presses Enter.
type stuckReader struct {
	release chan struct{}
}

func (r *stuckReader) Read(p []byte) (int, error) {
	<-r.release
	return 0, errors.New("reader released")
}

func TestResolveInstall_CancellationUnwindsOpenPrompt(t *testing.T) {
	r := &stuckReader{release: make(chan struct{})}
	defer close(r.release)

	var out bytes.Buffer
	session := NewSession(r, &out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := session.ResolveInstall(ctx, "spotify", spotifyHits(), resolve.NewGroups())
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("prompt did not unwind after cancellation")
	}
}

func TestTruncate_CutsLongDescriptions(t *testing.T) {
	long := strings.Repeat("x", maxDescription+10)
	got := Truncate(long)
	if len([]rune(got)) != maxDescription+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("unexpected truncation: %q", got)
	}
	if short := Truncate("short"); short != "short" {
		t.Errorf("short strings must pass through, got %q", short)
	}
}

func TestTruncate_NeverSplitsARune(t *testing.T) {
	long := strings.Repeat("é", maxDescription+5)
	got := Truncate(long)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if len([]rune(got)) != maxDescription+3 {
		t.Errorf("unexpected rune count %d: %q", len([]rune(got)), got)
	}
}
