package storepath

import (
	"errors"
	"testing"
)

const hash = "0123456789abcdefghijklmnopqrstuv"

func TestVersion(t *testing.T) {
	cases := []struct {
		name string
		path string
		want string
		ok   bool
	}{
		{
			name: "plain name and version",
			path: "/nix/store/" + hash + "-vim-9.1.0377",
			want: "9.1.0377", ok: true,
		},
		{
			name: "multi-word name keeps full suffix",
			path: "/nix/store/" + hash + "-bottles-unwrapped-60.1",
			want: "60.1", ok: true,
		},
		{
			name: "leftmost dash-digit boundary wins",
			path: "/nix/store/" + hash + "-openssl-3.0.13-dev",
			want: "3.0.13-dev", ok: true,
		},
		{
			name: "trailing slash is tolerated",
			path: "/nix/store/" + hash + "-jq-1.7.1/",
			want: "1.7.1", ok: true,
		},
		{
			name: "no version component",
			path: "/nix/store/" + hash + "-hello",
			ok:   false,
		},
		{
			name: "segment too short to carry a hash",
			path: "/nix/store/short",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Version(tc.path)
			if ok != tc.ok || got != tc.want {
				t.Errorf("Version(%q) = (%q, %v), want (%q, %v)",
					tc.path, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestResolve_PrimaryPathWins(t *testing.T) {
	refs := References(func(string) ([]string, error) {
		t.Fatal("references must not be consulted when the primary path parses")
		return nil, nil
	})
	got := Resolve("/nix/store/"+hash+"-vim-9.1.0377", "vim", refs)
	if got != "9.1.0377" {
		t.Errorf("expected 9.1.0377, got %q", got)
	}
}

func TestResolve_FallsBackToMatchingReference(t *testing.T) {
	refs := References(func(string) ([]string, error) {
		return []string{
			"/nix/store/" + hash + "-glibc-2.39",
			"/nix/store/" + hash + "-hello-2.12.1",
		}, nil
	})
	got := Resolve("/nix/store/"+hash+"-hello", "hello", refs)
	if got != "2.12.1" {
		t.Errorf("expected 2.12.1, got %q", got)
	}
}

func TestResolve_NeverFails(t *testing.T) {
	unversioned := "/nix/store/" + hash + "-hello"

	if got := Resolve(unversioned, "hello", nil); got != Unknown {
		t.Errorf("nil references: expected %q, got %q", Unknown, got)
	}

	failing := References(func(string) ([]string, error) {
		return nil, errors.New("store query failed")
	})
	if got := Resolve(unversioned, "hello", failing); got != Unknown {
		t.Errorf("failing references: expected %q, got %q", Unknown, got)
	}

	empty := References(func(string) ([]string, error) { return nil, nil })
	if got := Resolve(unversioned, "", empty); got != Unknown {
		t.Errorf("empty package name: expected %q, got %q", Unknown, got)
	}
}
