// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user dismisses a prompt.
var ErrCancelled = errors.New("prompt cancelled")

// Config holds common configuration for TUI components.
type Config struct {
	// Accessible forces the line-based prompt.
	Accessible bool
	// Input is where answers are read from (default os.Stdin).
	Input io.Reader
	// Output is where the prompt is drawn (default os.Stderr, so prompts stay
	// visible when stdout is captured).
	Output io.Writer
}

// DefaultConfig returns the configuration for prompts on the process's own
// terminal. Accessible mode is enabled by the ACCESSIBLE environment variable.
func DefaultConfig() Config {
	return Config{
		Accessible: os.Getenv("ACCESSIBLE") != "",
		Input:      os.Stdin,
		Output:     os.Stderr,
	}
}

// IsTerminal reports whether r is a file connected to a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// shouldUseAccessible reports whether the line-based prompt must be used,
// either by request or because input is not a terminal.
func shouldUseAccessible(cfg Config) bool {
	return cfg.Accessible || !IsTerminal(cfg.input())
}

func (c Config) input() io.Reader {
	if c.Input == nil {
		return os.Stdin
	}
	return c.Input
}

func (c Config) output() io.Writer {
	if c.Output == nil {
		return os.Stderr
	}
	return c.Output
}
