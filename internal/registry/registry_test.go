package registry

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/pkgmux-labs/pkgmux/internal/provider"
)

// fakeProvider is a scriptable adapter for registry tests.
type fakeProvider struct {
	name      string
	available bool
	hits      []provider.SearchResult
	installed []provider.InstalledEntry
	searchErr error
	listErr   error
}

func (f *fakeProvider) Name() string      { return f.name }
func (f *fakeProvider) IsAvailable() bool { return f.available }

func (f *fakeProvider) Install(ctx context.Context, ids []string) error   { return nil }
func (f *fakeProvider) Uninstall(ctx context.Context, ids []string) error { return nil }
func (f *fakeProvider) Upgrade(ctx context.Context, ids []string) error   { return nil }

func (f *fakeProvider) ListInstalled(ctx context.Context) ([]provider.InstalledEntry, error) {
	return f.installed, f.listErr
}

func (f *fakeProvider) Search(ctx context.Context, query string) ([]provider.SearchResult, error) {
	return f.hits, f.searchErr
}

func entry(name string, p *fakeProvider) Registration {
	return Registration{Name: name, New: func() (provider.Provider, error) { return p, nil }}
}

func TestDiscover_SkipsFailingConstructor(t *testing.T) {
	table := []Registration{
		{Name: "broken", New: func() (provider.Provider, error) {
			return nil, errors.New("no runner")
		}},
		entry("good", &fakeProvider{name: "good", available: true}),
	}

	reg := Discover(table)
	if !reflect.DeepEqual(reg.Names(), []string{"good"}) {
		t.Errorf("expected only the good provider, got %v", reg.Names())
	}
}

func TestDiscover_SkipsMismatchedName(t *testing.T) {
	reg := Discover([]Registration{
		entry("alpha", &fakeProvider{name: "beta"}),
	})
	if len(reg.Names()) != 0 {
		t.Errorf("expected empty registry, got %v", reg.Names())
	}
}

func TestDiscover_SkipsDuplicates(t *testing.T) {
	reg := Discover([]Registration{
		entry("alpha", &fakeProvider{name: "alpha"}),
		entry("alpha", &fakeProvider{name: "alpha"}),
	})
	if !reflect.DeepEqual(reg.Names(), []string{"alpha"}) {
		t.Errorf("expected a single alpha, got %v", reg.Names())
	}
}

func TestResolve_UnknownName(t *testing.T) {
	reg := Discover(nil)
	_, err := reg.Resolve("nope")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestDefault_FallsBackToFirstRegistered(t *testing.T) {
	reg := Discover([]Registration{
		entry("alpha", &fakeProvider{name: "alpha"}),
		entry("beta", &fakeProvider{name: "beta"}),
	})

	p, err := reg.Default("beta")
	if err != nil || p.Name() != "beta" {
		t.Errorf("expected beta, got %v (%v)", p, err)
	}

	p, err = reg.Default("missing")
	if err != nil || p.Name() != "alpha" {
		t.Errorf("expected alpha as fallback, got %v (%v)", p, err)
	}
}

func TestDefault_EmptyRegistryIsError(t *testing.T) {
	_, err := Discover(nil).Default("anything")
	if !errors.Is(err, ErrNoProviders) {
		t.Fatalf("expected ErrNoProviders, got %v", err)
	}
}

func TestLazy_BuildsOnce(t *testing.T) {
	calls := 0
	l := &Lazy{Table: []Registration{
		{Name: "alpha", New: func() (provider.Provider, error) {
			calls++
			return &fakeProvider{name: "alpha"}, nil
		}},
	}}

	first := l.Get()
	second := l.Get()
	if first != second {
		t.Error("expected the same registry instance on repeated calls")
	}
	if calls != 1 {
		t.Errorf("expected one constructor call, got %d", calls)
	}
}
