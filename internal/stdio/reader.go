// Package stdio drives the application from standard input: one command
// per line, consumed between ticks. It serves both interactive use and
// scripted runs piped into the binary.
package stdio

import (
	"bufio"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// Reader pumps lines from a dedicated goroutine into a channel, so the
// tick loop can poll for commands without blocking on stdin.
type Reader struct {
	lines chan string
}

// NewReader starts reading r line by line. The channel closes on EOF.
func NewReader(r io.Reader) *Reader {
	reader := &Reader{lines: make(chan string, 64)}
	go func() {
		defer close(reader.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			reader.lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			slog.Warn("Stdin read failed", "error", err)
		}
	}()
	return reader
}

// Lines returns the command line channel.
func (r *Reader) Lines() <-chan string { return r.lines }

// Interactive reports whether stdin is a terminal rather than a pipe.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
