package main

import (
	"errors"
	"fmt"

	clip2md "github.com/alnah/go-clip2md"
	"github.com/alnah/go-clip2md/internal/config"
	"github.com/alnah/go-clip2md/internal/hints"
)

// loadSettings resolves the effective configuration: defaults, then the
// config file, then CLIP2MD_* variables, then option flags.
//
// The config name comes from --config, then CLIP2MD_CONFIG. A missing default
// config is not an error. A missing named config is an error unless
// allowMissing is set, which prefs save uses to create the file.
func loadSettings(configFlag string, opts *optionFlags, allowMissing bool) (*config.Config, error) {
	env := loadEnvConfig()

	name := configFlag
	if name == "" {
		name = env.ConfigPath
	}
	explicit := name != ""
	if !explicit {
		name = config.DefaultName
	}

	cfg, err := config.LoadConfig(name)
	switch {
	case err == nil:
	case errors.Is(err, config.ErrConfigNotFound) && (!explicit || allowMissing):
		cfg = config.DefaultConfig()
	case errors.Is(err, config.ErrConfigNotFound):
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigPaths()))
	default:
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyEnvConfig(env, cfg)
	if opts != nil {
		mergeOptionFlags(opts, cfg)
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrInvalidValue) {
			return nil, fmt.Errorf("%w%s", err, hints.ForOutputMode([]string{config.OutputMarkdown, config.OutputClean}))
		}
		return nil, err
	}
	return cfg, nil
}

// userConfigPaths returns the default user config path for hints.
func userConfigPaths() []string {
	path, err := config.UserPath(config.DefaultName)
	if err != nil {
		return nil
	}
	return []string{path}
}

// optionsFromConfig converts persisted preferences into conversion options.
func optionsFromConfig(cfg *config.Config) (clip2md.Options, error) {
	mode, err := clip2md.ParseOutputMode(cfg.Options.Output)
	if err != nil {
		return clip2md.Options{}, err
	}
	o := cfg.Options
	return clip2md.Options{
		DropImages:           o.DropImages,
		DropBold:             o.DropBold,
		DropItalic:           o.DropItalic,
		DropCode:             o.DropCode,
		NormalizePunctuation: o.NormalizePunctuation,
		PandocHeadings:       o.PandocHeadings,
		HeadingsToBold:       o.HeadingsToBold,
		DePDF:                o.DePDF,
		Output:               mode,
	}, nil
}

// outputExtension returns the file extension written for an output mode.
func outputExtension(mode clip2md.OutputMode) string {
	if mode == clip2md.OutputClean {
		return "html"
	}
	return "md"
}
