package llvmanalysis

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// Logger receives coarse-grained tracing of expensive lazy builds (e.g.
// dominator computation over a function with thousands of blocks). The
// library never logs on its own initiative beyond what a Logger is asked
// to record; the zero value behavior (no Logger supplied) is silence, so
// that the no-I/O contract of spec.md §5 holds by default.
type Logger interface {
	Tracef(format string, args ...any)
}

// NopLogger discards everything. It is the default for every facade that
// isn't given a logger via an Option.
type NopLogger struct{}

// Tracef implements Logger.
func (NopLogger) Tracef(string, ...any) {}

// StderrLogger writes elapsed-time-prefixed trace lines to stderr. It
// prints messages as given; the facades format the counts in them with
// humanize.Comma (humanCount) before any Logger sees them. When
// stderr isn't a terminal (piped into a log aggregator, redirected to a
// file in CI) the elapsed-time prefix is dropped in favor of a plain,
// greppable line.
type StderrLogger struct {
	start      time.Time
	isTerminal bool
}

// NewStderrLogger creates a StderrLogger. Construction is cheap; call it
// once per facade and share the instance across every analysis it builds.
func NewStderrLogger() *StderrLogger {
	return &StderrLogger{
		start:      time.Now(),
		isTerminal: isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
	}
}

// Tracef implements Logger.
func (l *StderrLogger) Tracef(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !l.isTerminal {
		fmt.Fprintln(os.Stderr, msg)
		return
	}
	elapsed := time.Since(l.start)
	mins := int(elapsed.Minutes())
	secs := int(elapsed.Seconds()) % 60
	fmt.Fprintf(os.Stderr, "[%02d:%02d] %s\n", mins, secs, msg)
}

// humanCount formats n the way StderrLogger reports block/edge/function
// counts once a module is large enough for the separators to matter.
func humanCount(n int) string {
	return humanize.Comma(int64(n))
}
