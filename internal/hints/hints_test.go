package hints

// Notes:
// - ForClipboard tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer and goos variables

import (
	"strings"
	"testing"
)

func stubPlatform(t *testing.T, os string, container bool) {
	t.Helper()
	origOS, origContainer := goos, IsInContainer
	t.Cleanup(func() { goos, IsInContainer = origOS, origContainer })
	goos = os
	IsInContainer = func() bool { return container }
}

func TestForClipboard_HeadlessLinux(t *testing.T) {
	stubPlatform(t, "linux", false)
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	hint := ForClipboard()

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("expected hint prefix, got %q", hint)
	}
	if !strings.Contains(hint, "--stdin") {
		t.Error("expected --stdin suggestion without a display")
	}
	if !strings.Contains(hint, "xclip") {
		t.Error("expected clipboard utility suggestion on Linux")
	}
}

func TestForClipboard_DesktopLinux(t *testing.T) {
	stubPlatform(t, "linux", false)
	t.Setenv("DISPLAY", ":0")

	hint := ForClipboard()

	if strings.Contains(hint, "no display") {
		t.Errorf("unexpected display hint with DISPLAY set: %q", hint)
	}
	if !strings.Contains(hint, "wl-clipboard") {
		t.Error("expected clipboard utility suggestion on Linux")
	}
}

func TestForClipboard_Container(t *testing.T) {
	stubPlatform(t, "darwin", true)

	hint := ForClipboard()

	if !strings.Contains(hint, "--stdin") {
		t.Error("expected --stdin suggestion in a container")
	}
	if strings.Contains(hint, "xclip") {
		t.Error("unexpected Linux utility suggestion on darwin")
	}
}

func TestForClipboard_Desktop(t *testing.T) {
	stubPlatform(t, "darwin", false)

	hint := ForClipboard()

	if !strings.Contains(hint, "copy something first") {
		t.Errorf("expected generic hint, got %q", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains []string
	}{
		{
			name:     "suggests user config path",
			paths:    []string{"config.yaml", "/home/u/.config/clip2md/config.yaml"},
			contains: []string{"--config", "or create /home/u/.config/clip2md/config.yaml"},
		},
		{
			name:     "no user path",
			paths:    []string{"config.yaml"},
			contains: []string{"--config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			for _, want := range tt.contains {
				if !strings.Contains(hint, want) {
					t.Errorf("ForConfigNotFound() = %q, want to contain %q", hint, want)
				}
			}
		})
	}
}

func TestForOutputMode(t *testing.T) {
	t.Parallel()

	if got := ForOutputMode(nil); got != "" {
		t.Errorf("ForOutputMode(nil) = %q, want empty", got)
	}
	got := ForOutputMode([]string{"markdown", "clean"})
	if got != "\n  hint: available: markdown, clean" {
		t.Errorf("ForOutputMode() = %q", got)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	for name, hint := range map[string]string{
		"ForStore":           ForStore(),
		"ForEmptySession":    ForEmptySession(),
		"ForOutputDirectory": ForOutputDirectory(),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("%s() = %q, want hint prefix", name, hint)
		}
	}
	if format("") != "" {
		t.Error("format(\"\") should be empty")
	}
	if formatHints(nil) != "" {
		t.Error("formatHints(nil) should be empty")
	}
}
