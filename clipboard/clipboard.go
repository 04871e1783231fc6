// Package clipboard copies Markdown to the system clipboard, falling back to
// the terminal's OSC 52 selection sequence when no clipboard tool exists.
package clipboard

import (
	"encoding/base64"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/web2md"
	"github.com/mattn/go-isatty"
)

// Ensure Clipboard implements web2md.Clipboard at compile time.
var _ web2md.Clipboard = (*Clipboard)(nil)

// Clipboard writes text to the first mechanism that accepts it.
type Clipboard struct {
	system   func(text string) error
	terminal io.Writer
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithSystem replaces the system clipboard writer. A nil fn disables the
// system clipboard.
func WithSystem(fn func(text string) error) Option {
	return func(c *Clipboard) {
		c.system = fn
	}
}

// WithTerminal sets the terminal that receives the OSC 52 fallback.
func WithTerminal(w io.Writer) Option {
	return func(c *Clipboard) {
		c.terminal = w
	}
}

// New returns a Clipboard that uses the platform clipboard tool when one is
// available.
func New(opts ...Option) *Clipboard {
	c := &Clipboard{}
	if !clipboard.Unsupported {
		c.system = clipboard.WriteAll
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Terminal returns f when it is attached to a terminal and nil otherwise.
func Terminal(f *os.File) io.Writer {
	if f == nil {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return f
	}
	return nil
}

// Copy places text on the clipboard.
func (c *Clipboard) Copy(text string) error {
	var systemErr error
	if c.system != nil {
		if systemErr = c.system(text); systemErr == nil {
			return nil
		}
	}

	if c.terminal != nil {
		if _, err := io.WriteString(c.terminal, OSC52(text)); err == nil {
			return nil
		}
	}

	if systemErr != nil {
		return web2md.Errorf(web2md.ECLIPBOARD, "copy failed: %v", systemErr)
	}
	return web2md.Errorf(web2md.ECLIPBOARD, "no clipboard available")
}

// OSC52 returns the escape sequence that asks a terminal to place text on
// the system clipboard.
func OSC52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
}
