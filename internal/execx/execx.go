// Package execx wraps child-process execution behind a small interface so
// provider adapters can be tested without spawning real package managers.
package execx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Command describes one child-process invocation.
type Command struct {
	Name string
	Args []string

	// Stream mirrors the child's stdout/stderr to the parent's while
	// still capturing them, for long-running installs.
	Stream bool
}

// Result captures the outcome of a finished child process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes commands. The production implementation shells out;
// tests use Fake.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// System is the Runner backed by os/exec.
type System struct{}

// NewRunner returns the production Runner.
func NewRunner() Runner { return &System{} }

func (System) Run(ctx context.Context, cmd Command) (Result, error) {
	start := time.Now()
	slog.Debug("running command", "name", cmd.Name, "args", cmd.Args)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)

	var stdout, stderr strings.Builder
	if cmd.Stream {
		c.Stdout = io.MultiWriter(&stdout, os.Stdout)
		c.Stderr = io.MultiWriter(&stderr, os.Stderr)
	} else {
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	err := c.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(err),
		Duration: time.Since(start),
	}

	if err != nil {
		slog.Debug("command failed", "name", cmd.Name, "exit", res.ExitCode, "stderr", res.Stderr)
	}
	return res, err
}

// LookPath reports whether a binary is on PATH. Split out so availability
// checks share one spot.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Benign reports whether a failed run's stderr matches one of the known
// benign-failure substrings (e.g., "nothing matched" from nix profile
// remove). Call sites use it to downgrade a non-zero exit to a warning.
func Benign(res Result, substrings ...string) bool {
	for _, s := range substrings {
		if strings.Contains(res.Stderr, s) {
			return true
		}
	}
	return false
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
