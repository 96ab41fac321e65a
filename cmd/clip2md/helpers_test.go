package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-clip2md/internal/store"
)

// stubClipboard is an in-memory ClipboardIO.
type stubClipboard struct {
	text     string
	written  string
	writeErr error
}

func (c *stubClipboard) ReadText() (string, bool) {
	if strings.TrimSpace(c.text) == "" {
		return "", false
	}
	return c.text, true
}

func (c *stubClipboard) WriteText(text string) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.written = text
	return nil
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	env       *Environment
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	clipboard *stubClipboard
}

// newTestEnv returns an Environment with buffered I/O, a stub clipboard and
// the given stdin content.
func newTestEnv(stdin string) *testEnv {
	te := &testEnv{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		clipboard: &stubClipboard{},
	}
	te.env = &Environment{
		Now:       func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdin:     strings.NewReader(stdin),
		Stdout:    te.stdout,
		Stderr:    te.stderr,
		Clipboard: te.clipboard,
		OpenStore: store.Open,
	}
	return te
}

// writeTestConfig writes a config file in a temp dir and returns its path.
// Passing it with --config keeps tests independent of the user's config.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip2md.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// writeTestFile writes content to dir/name and returns the path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("creating dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	return path
}

// readTestFile returns the content of path or fails the test.
func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
