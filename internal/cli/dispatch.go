package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/pkgmux-labs/pkgmux/internal/provider"
	"github.com/pkgmux-labs/pkgmux/internal/registry"
	"github.com/pkgmux-labs/pkgmux/internal/resolve"
)

// dispatchGroups sends each scheduled group to op in group order.
// An unknown or unavailable provider drops its group with a warning and
// the remaining groups proceed; a mutation failure is fatal and stops
// before any group not yet dispatched.
func dispatchGroups(ctx context.Context, errOut io.Writer, reg *registry.Registry, groups *resolve.Groups, verb string,
	op func(ctx context.Context, p provider.Provider, ids []string) error) error {

	for _, name := range groups.Providers() {
		ids := groups.IDs(name)
		if len(ids) == 0 {
			continue
		}

		p, ok := reg.Lookup(name)
		if !ok {
			fmt.Fprintf(errOut, "Warning: unknown provider %q; skipping %d packages.\n", name, len(ids))
			continue
		}
		if !p.IsAvailable() {
			fmt.Fprintf(errOut, "Warning: provider %q is not available on this system; skipping %d packages.\n", name, len(ids))
			continue
		}

		fmt.Fprintf(errOut, "%s %d packages via %s...\n", verb, len(ids), name)
		if err := op(ctx, p, ids); err != nil {
			return fmt.Errorf("%s via %s: %w", verb, name, err)
		}
	}
	return nil
}

// canPrompt reports whether interactive disambiguation is possible on
// the given input. Injected readers (tests, cobra SetIn) always can;
// a real stdin must be a terminal.
func canPrompt(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd()))
}
