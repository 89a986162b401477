// Package prompt implements the interactive disambiguation of unqualified
// package references. Each ambiguous item runs a small per-item state
// machine: search (or installed-listing match), present a numbered menu,
// then record the selection. Input and output are injected so the
// machines are testable with a scripted sequence of lines and fixture
// candidates, without a real terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Outcome is the terminal state of one disambiguation session.
type Outcome int

const (
	// Selected means at least one candidate was scheduled.
	Selected Outcome = iota
	// NoMatch means the search or installed-listing produced no candidates.
	NoMatch
	// Skipped means the user declined the item ("s"/"q", or a cancelled
	// bulk confirmation).
	Skipped
	// Invalid means the answer was not an accepted input; the item is
	// dropped without a retry.
	Invalid
	// AlreadySelected means every candidate was scheduled earlier in the
	// same command, so no menu was shown.
	AlreadySelected
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case NoMatch:
		return "no match"
	case Skipped:
		return "skipped"
	case Invalid:
		return "invalid input"
	case AlreadySelected:
		return "already selected"
	default:
		return "unknown"
	}
}

// Session carries the prompt I/O for one command invocation.
type Session struct {
	in  *bufio.Reader
	out io.Writer
}

// NewSession wraps the given reader and writer.
func NewSession(in io.Reader, out io.Writer) *Session {
	return &Session{in: bufio.NewReader(in), out: out}
}

// maxDescription is the menu description cutoff.
const maxDescription = 60

// Truncate shortens a description for display, marking the cut with an
// ellipsis. It counts runes, never bytes, so multi-byte text is not cut
// mid-sequence. Shared by the disambiguation menus and the search table.
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDescription {
		return s
	}
	return string(runes[:maxDescription]) + "..."
}

// readLine reads the next answer. The blocking read runs on its own
// goroutine so an interrupt cancels the open prompt instead of hanging
// until the user presses Enter; on cancellation the context error
// propagates and the reader goroutine is abandoned (the process is
// exiting). An I/O failure (including EOF on a scripted reader that ran
// dry) surfaces as an error so the caller can unwind instead of
// spinning.
func (s *Session) readLine(ctx context.Context) (string, error) {
	type answer struct {
		line string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := s.in.ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-ch:
		if a.err != nil && a.line == "" {
			return "", fmt.Errorf("reading selection: %w", a.err)
		}
		return strings.TrimSpace(a.line), nil
	}
}

// parseChoice interprets a menu answer against n items. It returns the
// zero-based index, or skip=true for "s"/"q" (case-insensitive). Any
// other answer is invalid.
func parseChoice(answer string, n int) (idx int, skip bool, err error) {
	switch strings.ToLower(answer) {
	case "s", "q":
		return 0, true, nil
	}
	num, convErr := strconv.Atoi(answer)
	if convErr != nil || num < 1 || num > n {
		return 0, false, fmt.Errorf("invalid selection %q: choose 1-%d", answer, n)
	}
	return num - 1, false, nil
}
