// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-clip2md/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// goos is the target OS, replaceable in tests.
var goos = runtime.GOOS

// ForClipboard returns hints for an empty or unreadable clipboard.
// Suggests piping content when no display is reachable, and the clipboard
// utilities atotto/clipboard relies on for Linux.
func ForClipboard() string {
	var hints []string

	headless := goos == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
	if headless || IsInContainer() {
		hints = append(hints, "no display found: pipe content with --stdin")
	}

	if goos == "linux" {
		hints = append(hints, "install xclip, xsel or wl-clipboard")
	}

	if len(hints) == 0 {
		hints = append(hints, "copy something first, or use --stdin")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/clip2md/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/clip2md) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/clip2md") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForStore returns hints for session database errors.
func ForStore() string {
	return format("use --store /path/to/session.db or set CLIP2MD_STORE")
}

// ForEmptySession returns a hint when there is nothing to render.
func ForEmptySession() string {
	return format("add content with: clip2md paste add")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForOutputMode returns hints listing the accepted output modes.
func ForOutputMode(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
