package main

import (
	"fmt"

	"github.com/alnah/go-clip2md/internal/config"
)

// runPrefs dispatches a prefs subcommand.
func runPrefs(args []string, env *Environment) error {
	if len(args) == 0 {
		printPrefsUsage(env.Stderr)
		return fmt.Errorf("%w: missing prefs subcommand", ErrUsage)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "show", "save":
	case "-h", "--help":
		printPrefsUsage(env.Stdout)
		return nil
	default:
		return fmt.Errorf("%w: unknown prefs subcommand %q", ErrUsage, sub)
	}

	flags, positional, err := parsePrefsFlags(rest, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	if sub == "show" {
		return prefsShow(flags, env)
	}
	return prefsSave(flags, env)
}

// prefsShow prints the effective configuration as YAML.
func prefsShow(flags *prefsFlags, env *Environment) error {
	cfg, err := loadSettings(flags.common.config, &flags.options, false)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}

// prefsSave persists the effective configuration. The target is --config,
// then CLIP2MD_CONFIG, then the default user config file.
func prefsSave(flags *prefsFlags, env *Environment) error {
	cfg, err := loadSettings(flags.common.config, &flags.options, true)
	if err != nil {
		return err
	}

	path, err := savePath(flags.common.config)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Saved preferences to %s\n", path)
	}
	return nil
}

// savePath resolves where prefs save writes: the file prefs show would read
// for the same name, else a new file in the user config directory.
func savePath(configFlag string) (string, error) {
	name := configFlag
	if name == "" {
		name = loadEnvConfig().ConfigPath
	}
	if name == "" {
		name = config.DefaultName
	}
	return config.SavePath(name)
}
