package outage

import (
	"os"

	"github.com/mattn/go-isatty"
)

// RenderContext tells the listener whether there is anyone to show a
// notification to.
type RenderContext interface {
	Interactive() bool
}

// TerminalContext is interactive when stdout is attached to a terminal.
type TerminalContext struct {
	// Headless forces the non-interactive behaviour, e.g. under CI.
	Headless bool

	fd uintptr
}

// NewTerminalContext inspects os.Stdout.
func NewTerminalContext(headless bool) *TerminalContext {
	return &TerminalContext{Headless: headless, fd: os.Stdout.Fd()}
}

// Interactive implements RenderContext.
func (c *TerminalContext) Interactive() bool {
	if c.Headless {
		return false
	}
	return isatty.IsTerminal(c.fd) || isatty.IsCygwinTerminal(c.fd)
}

// StaticContext is a fixed RenderContext.
type StaticContext bool

// Interactive implements RenderContext.
func (c StaticContext) Interactive() bool {
	return bool(c)
}
