package execx

import (
	"context"
	"fmt"
	"strings"
)

// Fake is a scripted Runner for adapter tests. Responses are keyed by the
// joined command line; unmatched commands return an error so tests notice
// unexpected invocations.
type Fake struct {
	Responses map[string]Result
	Errors    map[string]error
	Calls     []string
}

// NewFake returns an empty scripted runner.
func NewFake() *Fake {
	return &Fake{
		Responses: make(map[string]Result),
		Errors:    make(map[string]error),
	}
}

// Stub registers stdout for a command line, e.g.
// f.Stub("brew list --versions", "git 2.44.0\n").
func (f *Fake) Stub(cmdline, stdout string) {
	f.Responses[cmdline] = Result{Stdout: stdout}
}

// StubError registers a failing command with the given stderr and exit code.
func (f *Fake) StubError(cmdline, stderr string, exitCode int, err error) {
	f.Responses[cmdline] = Result{Stderr: stderr, ExitCode: exitCode}
	f.Errors[cmdline] = err
}

func (f *Fake) Run(_ context.Context, cmd Command) (Result, error) {
	line := cmd.Name
	if len(cmd.Args) > 0 {
		line += " " + strings.Join(cmd.Args, " ")
	}
	f.Calls = append(f.Calls, line)

	res, ok := f.Responses[line]
	if !ok {
		return Result{}, fmt.Errorf("execx.Fake: no stub for %q", line)
	}
	return res, f.Errors[line]
}
