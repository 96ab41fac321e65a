package main

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should not be empty")
	}

	te := newTestEnv("")
	if code := runMain([]string{"clip2md", "version"}, te.env); code != ExitSuccess {
		t.Fatalf("runMain(version) = %d, want %d", code, ExitSuccess)
	}
	if got, want := te.stdout.String(), "clip2md "+Version+"\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"convert", "-v", "a.html"}, true},
		{[]string{"paste", "show", "--verbose"}, true},
		{[]string{"convert", "a.html"}, false},
		{[]string{"convert", "--", "-v"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			if got := hasVerboseFlag(tt.args); got != tt.want {
				t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{"clip2md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: clip2md"},
		},
		{
			name:         "help command exits 0",
			args:         []string{"clip2md", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: clip2md", "Commands:"},
		},
		{
			name:         "help convert shows convert help",
			args:         []string{"clip2md", "help", "convert"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: clip2md convert"},
		},
		{
			name:         "help paste shows paste help",
			args:         []string{"clip2md", "help", "paste"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: clip2md paste", "replace <file.md>"},
		},
		{
			name:         "help prefs shows prefs help",
			args:         []string{"clip2md", "help", "prefs"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: clip2md prefs"},
		},
		{
			name:         "help unknown exits with ExitUsage",
			args:         []string{"clip2md", "help", "bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Unknown command: bogus"},
		},
		{
			name:         "convert -h exits 0",
			args:         []string{"clip2md", "convert", "-h"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"Usage: clip2md convert"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"clip2md", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "unknown flag exits with ExitUsage",
			args:         []string{"clip2md", "convert", "--bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown flag"},
		},
		{
			name:         "paste without subcommand exits with ExitUsage",
			args:         []string{"clip2md", "paste"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"missing paste subcommand"},
		},
		{
			name:         "unknown paste subcommand exits with ExitUsage",
			args:         []string{"clip2md", "paste", "frobnicate"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown paste subcommand"},
		},
		{
			name:         "prefs without subcommand exits with ExitUsage",
			args:         []string{"clip2md", "prefs"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"missing prefs subcommand"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv("")
			code := runMain(tt.args, te.env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, te.stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(te.stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, te.stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(te.stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, te.stderr.String())
				}
			}
		})
	}
}

func TestRunMain_ExitCodes(t *testing.T) {
	t.Parallel()

	cfg := writeTestConfig(t, "workers: 0\n")
	badCfg := writeTestConfig(t, "options:\n  stripBackslashEscapes: true\n")

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"nonexistent file returns ExitIO", []string{"clip2md", "convert", "-c", cfg, "nonexistent.html"}, ExitIO},
		{"no input returns ExitIO", []string{"clip2md", "convert", "-c", cfg}, ExitIO},
		{"unsupported extension returns ExitUsage", []string{"clip2md", "convert", "-c", cfg, "main_test.go"}, ExitUsage},
		{"too many workers returns ExitUsage", []string{"clip2md", "convert", "-c", cfg, "-w", "99", "x.html"}, ExitUsage},
		{"bad mode returns ExitUsage", []string{"clip2md", "convert", "-c", cfg, "--mode", "pdf", "x.html"}, ExitUsage},
		{"legacy option name returns ExitUsage", []string{"clip2md", "prefs", "show", "-c", badCfg}, ExitUsage},
		{"missing named config returns ExitUsage", []string{"clip2md", "prefs", "show", "-c", "no-such-config-name"}, ExitUsage},
		{"bad stdin kind returns ExitUsage", []string{"clip2md", "convert", "-c", cfg, "--stdin", "--kind", "rtf"}, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv("")
			code := runMain(tt.args, te.env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, te.stderr.String())
			}
		})
	}
}
