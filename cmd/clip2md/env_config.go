package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-clip2md/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // CLIP2MD_CONFIG: config file name or path
	OutputDir  string // CLIP2MD_OUTPUT_DIR: default output directory
	StorePath  string // CLIP2MD_STORE: paste session database
	Output     string // CLIP2MD_OUTPUT: markdown or clean
	Workers    int    // CLIP2MD_WORKERS: parallel workers
}

// knownEnvVars lists valid CLIP2MD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CLIP2MD_CONFIG":     true,
	"CLIP2MD_OUTPUT_DIR": true,
	"CLIP2MD_STORE":      true,
	"CLIP2MD_OUTPUT":     true,
	"CLIP2MD_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid or negative worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("CLIP2MD_CONFIG"),
		OutputDir:  os.Getenv("CLIP2MD_OUTPUT_DIR"),
		StorePath:  os.Getenv("CLIP2MD_STORE"),
		Output:     os.Getenv("CLIP2MD_OUTPUT"),
	}

	if workers := os.Getenv("CLIP2MD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CLIP2MD_* variables.
// Helps catch typos like CLIP2MD_OUTPUTDIR instead of CLIP2MD_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CLIP2MD_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the loaded config.
// Set variables win over the file, so the precedence is
// CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.StorePath != "" {
		cfg.Store.Path = env.StorePath
	}
	if env.Output != "" {
		cfg.Options.Output = strings.ToLower(strings.TrimSpace(env.Output))
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
