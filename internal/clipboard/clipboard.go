// Package clipboard reads and writes the system clipboard.
//
// Access failures (no clipboard utility, denied permission, headless
// session) are not errors for readers: they mean no content is available.
package clipboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrUnavailable indicates the system clipboard cannot be written.
var ErrUnavailable = errors.New("system clipboard unavailable")

// Clipboard reads and writes plain text through injectable functions.
type Clipboard struct {
	readAll     func() (string, error)
	writeAll    func(string) error
	unsupported bool
}

// New returns a Clipboard backed by the system clipboard.
func New() *Clipboard {
	return &Clipboard{
		readAll:     clipboard.ReadAll,
		writeAll:    clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
	}
}

// NewWithFuncs returns a Clipboard using the given functions. Used by tests
// and by callers that bridge another clipboard source.
func NewWithFuncs(readAll func() (string, error), writeAll func(string) error) *Clipboard {
	return &Clipboard{readAll: readAll, writeAll: writeAll}
}

// Available reports whether a clipboard utility was found.
func (c *Clipboard) Available() bool {
	return !c.unsupported && c.readAll != nil
}

// ReadText returns the clipboard text. ok is false when the clipboard is
// unavailable, access fails or it holds only whitespace.
func (c *Clipboard) ReadText() (text string, ok bool) {
	if !c.Available() {
		return "", false
	}
	text, err := c.readAll()
	if err != nil || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// WriteText replaces the clipboard content with text.
func (c *Clipboard) WriteText(text string) error {
	if c.unsupported || c.writeAll == nil {
		return ErrUnavailable
	}
	if err := c.writeAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
