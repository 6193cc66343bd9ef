// Package terminal wraps the local console for interactive guest sessions.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Console wraps the process's standard streams.
type Console struct {
	stdin  *os.File
	stdout *os.File
	stderr *os.File
	fd     int
}

// Current returns the current console.
func Current() *Console {
	return &Console{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		fd:     int(os.Stdin.Fd()),
	}
}

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Term returns the terminal type to request for a remote PTY.
func Term() string {
	if t := os.Getenv("TERM"); t != "" {
		return t
	}
	return "xterm-256color"
}

// Stdin returns the console input stream.
func (c *Console) Stdin() *os.File { return c.stdin }

// Stdout returns the console output stream.
func (c *Console) Stdout() *os.File { return c.stdout }

// Stderr returns the console error stream.
func (c *Console) Stderr() *os.File { return c.stderr }

// SetRaw puts the terminal into raw mode and returns restore function.
func (c *Console) SetRaw() (func(), error) {
	oldState, err := term.MakeRaw(c.fd)
	if err != nil {
		return nil, err
	}
	return func() {
		term.Restore(c.fd, oldState)
	}, nil
}

// Size returns the current terminal size.
func (c *Console) Size() (width, height int, err error) {
	return term.GetSize(c.fd)
}
