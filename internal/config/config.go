// Package config loads and persists clip2md configuration: conversion
// preferences, default directories, the paste store location and the batch
// worker count.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	clip2md "github.com/alnah/go-clip2md"
	"github.com/alnah/go-clip2md/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName names the user config directory.
const AppName = "clip2md"

// DefaultName is the config name used when none is given.
const DefaultName = "config"

// MaxPathLength limits path values. PATH_MAX on Linux.
const MaxPathLength = 4096

// Output mode values accepted in options.output.
const (
	OutputMarkdown = "markdown"
	OutputClean    = "clean"
)

// Config holds all clip2md configuration.
type Config struct {
	Options OptionsConfig `yaml:"options"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Store   StoreConfig   `yaml:"store"`
	Workers int           `yaml:"workers"` // 0 = auto
}

// OptionsConfig holds the persisted conversion preferences.
type OptionsConfig struct {
	DropImages           bool   `yaml:"dropImages"`
	DropBold             bool   `yaml:"dropBold"`
	DropItalic           bool   `yaml:"dropItalic"`
	DropCode             bool   `yaml:"dropCode"`
	NormalizePunctuation bool   `yaml:"normalizePunctuation"`
	PandocHeadings       bool   `yaml:"pandocHeadings"`
	HeadingsToBold       bool   `yaml:"headingsToBold"`
	DePDF                bool   `yaml:"dePdf"`
	Output               string `yaml:"output"` // "markdown" or "clean"
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// StoreConfig defines where the paste session is kept.
type StoreConfig struct {
	Path string `yaml:"path"` // Empty = user cache directory
}

// Validate checks values and path lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	switch c.Options.Output {
	case "", OutputMarkdown, OutputClean:
	default:
		return fmt.Errorf("%w: options.output: must be %q or %q, got %q",
			ErrInvalidValue, OutputMarkdown, OutputClean, c.Options.Output)
	}

	if c.Workers < 0 || c.Workers > clip2md.MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, clip2md.MaxWorkers, c.Workers)
	}

	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	return validateFieldLength("store.path", c.Store.Path, MaxPathLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration of a fresh install: punctuation
// normalization and image dropping on, Markdown output.
func DefaultConfig() *Config {
	return &Config{
		Options: OptionsConfig{
			DropImages:           true,
			NormalizePunctuation: true,
			Output:               OutputMarkdown,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save validates cfg and writes it to path atomically.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := fileutil.WriteFileAtomic(path, data, fileutil.FilePerm); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Marshal encodes cfg as YAML, for display.
func Marshal(cfg *Config) ([]byte, error) {
	return marshal(cfg)
}

// UserPath returns the path of a named config in the user config directory.
func UserPath(name string) (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(userConfigDir, AppName, name+".yaml"), nil
}

// SavePath returns the file that saving under nameOrPath should write: the
// path itself, the file LoadConfig would read for a name, or the user config
// path when no such file exists yet.
func SavePath(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", ErrEmptyConfigName
	}
	if fileutil.IsFilePath(nameOrPath) {
		return nameOrPath, nil
	}

	path, err := resolveConfigPath(nameOrPath)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return "", err
	}
	return UserPath(nameOrPath)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/clip2md/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
