package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-clip2md/internal/clipboard"
	"github.com/alnah/go-clip2md/internal/store"
)

// ClipboardIO reads and writes clipboard text.
type ClipboardIO interface {
	ReadText() (string, bool)
	WriteText(text string) error
}

// Compile-time interface implementation check.
var _ ClipboardIO = (*clipboard.Clipboard)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, the clipboard and the paste store opener.
type Environment struct {
	Now       func() time.Time
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Clipboard ClipboardIO
	OpenStore func(ctx context.Context, path string) (*store.Store, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Clipboard: clipboard.New(),
		OpenStore: store.Open,
	}
}
