package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-clip2md/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// optionFlags holds conversion option flags. Boolean options default to the
// config value, so only flags given on the command line are merged.
type optionFlags struct {
	dropImages           bool
	dropBold             bool
	dropItalic           bool
	dropCode             bool
	normalizePunctuation bool
	pandocHeadings       bool
	headingsToBold       bool
	dePDF                bool
	mode                 string
	changed              map[string]bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	options optionFlags
	output  string
	workers int
	stdin   bool
	kind    string
}

// pasteFlags holds flags for the paste subcommands.
type pasteFlags struct {
	common  commonFlags
	options optionFlags
	store   string
	stdin   bool
	html    bool
	text    bool
	pdf     bool
	copy    bool
	output  string
}

// prefsFlags holds flags for the prefs subcommands.
type prefsFlags struct {
	common  commonFlags
	options optionFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addOptionFlags adds conversion option flags to a FlagSet.
func addOptionFlags(fs *flag.FlagSet, f *optionFlags) {
	fs.BoolVar(&f.dropImages, "drop-images", false, "remove images")
	fs.BoolVar(&f.dropBold, "drop-bold", false, "remove bold markup")
	fs.BoolVar(&f.dropItalic, "drop-italic", false, "remove italic markup")
	fs.BoolVar(&f.dropCode, "drop-code", false, "remove code markup")
	fs.BoolVar(&f.normalizePunctuation, "normalize-punctuation", false, "fold typographic punctuation to ASCII")
	fs.BoolVar(&f.pandocHeadings, "pandoc-headings", false, "setext underlines for h1/h2")
	fs.BoolVar(&f.headingsToBold, "headings-to-bold", false, "render headings as bold paragraphs")
	fs.BoolVar(&f.dePDF, "de-pdf", false, "repair PDF line wrapping and hyphenation")
	fs.StringVarP(&f.mode, "mode", "m", "", "output mode: markdown, clean")
}

// recordChanged remembers which option flags were set explicitly.
func (f *optionFlags) recordChanged(fs *flag.FlagSet) {
	f.changed = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		f.changed[fl.Name] = true
	})
}

// mergeOptionFlags merges explicitly set option flags into config. CLI values
// override config values.
func mergeOptionFlags(f *optionFlags, cfg *config.Config) {
	set := func(name string, dst *bool, v bool) {
		if f.changed[name] {
			*dst = v
		}
	}
	set("drop-images", &cfg.Options.DropImages, f.dropImages)
	set("drop-bold", &cfg.Options.DropBold, f.dropBold)
	set("drop-italic", &cfg.Options.DropItalic, f.dropItalic)
	set("drop-code", &cfg.Options.DropCode, f.dropCode)
	set("normalize-punctuation", &cfg.Options.NormalizePunctuation, f.normalizePunctuation)
	set("pandoc-headings", &cfg.Options.PandocHeadings, f.pandocHeadings)
	set("headings-to-bold", &cfg.Options.HeadingsToBold, f.headingsToBold)
	set("de-pdf", &cfg.Options.DePDF, f.dePDF)

	if f.mode != "" {
		cfg.Options.Output = f.mode
	}
}

// parseFlagSet parses args, wrapping parse errors as usage errors.
// flag.ErrHelp is returned unwrapped.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.stdin, "stdin", false, "read from stdin, write to stdout")
	fs.StringVarP(&f.kind, "kind", "k", "html", "stdin source kind: html, pdf, text")

	addCommonFlags(fs, &f.common)
	addOptionFlags(fs, &f.options)

	fs.SetOutput(w)
	fs.Usage = func() { printConvertUsage(w) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	f.options.recordChanged(fs)

	return f, fs.Args(), nil
}

// parsePasteFlags parses flags for a paste subcommand and returns positional args.
func parsePasteFlags(args []string, w io.Writer) (*pasteFlags, []string, error) {
	fs := flag.NewFlagSet("paste", flag.ContinueOnError)
	f := &pasteFlags{}

	fs.StringVar(&f.store, "store", "", "paste session database path")
	fs.BoolVar(&f.stdin, "stdin", false, "read the paste from stdin")
	fs.BoolVar(&f.html, "html", false, "treat the paste as HTML")
	fs.BoolVar(&f.text, "text", false, "treat the paste as plain text")
	fs.BoolVar(&f.pdf, "pdf", false, "treat the paste as PDF-extracted text")
	fs.BoolVar(&f.copy, "copy", false, "copy the result to the clipboard")
	fs.StringVarP(&f.output, "output", "o", "", "write the result to a file")

	addCommonFlags(fs, &f.common)
	addOptionFlags(fs, &f.options)

	fs.SetOutput(w)
	fs.Usage = func() { printPasteUsage(w) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	f.options.recordChanged(fs)

	return f, fs.Args(), nil
}

// parsePrefsFlags parses flags for a prefs subcommand and returns positional args.
func parsePrefsFlags(args []string, w io.Writer) (*prefsFlags, []string, error) {
	fs := flag.NewFlagSet("prefs", flag.ContinueOnError)
	f := &prefsFlags{}

	addCommonFlags(fs, &f.common)
	addOptionFlags(fs, &f.options)

	fs.SetOutput(w)
	fs.Usage = func() { printPrefsUsage(w) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	f.options.recordChanged(fs)

	return f, fs.Args(), nil
}
