package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: clip2md <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert HTML or PDF-extracted text files to Markdown")
	fmt.Fprintln(w, "  paste      Collect clipboard pastes and render them together")
	fmt.Fprintln(w, "  prefs      Show or save conversion preferences")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'clip2md help <command>' for details on a specific command.")
}

// printOptionFlags prints the conversion option flags shared by commands.
func printOptionFlags(w io.Writer) {
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --drop-images         Remove images (default on, --drop-images=false keeps them)")
	fmt.Fprintln(w, "      --drop-bold           Remove bold markup")
	fmt.Fprintln(w, "      --drop-italic         Remove italic markup")
	fmt.Fprintln(w, "      --drop-code           Remove code markup")
	fmt.Fprintln(w, "      --normalize-punctuation")
	fmt.Fprintln(w, "                            Fold smart quotes, dashes, bullets to ASCII (default on)")
	fmt.Fprintln(w, "      --pandoc-headings     Setext underlines for h1/h2")
	fmt.Fprintln(w, "      --headings-to-bold    Render headings as bold paragraphs")
	fmt.Fprintln(w, "      --de-pdf              Repair PDF line wrapping and hyphenation")
	fmt.Fprintln(w, "  -m, --mode <s>            Output: markdown, clean (HTML without styling)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: clip2md convert <input> [flags]")
	fmt.Fprintln(w, "       clip2md convert --stdin [--kind html|pdf|text] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert files to Markdown, or to clean HTML with --mode clean.")
	fmt.Fprintln(w, "Accepted inputs: .html, .htm, .md, .markdown, .txt (PDF-extracted text).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to input)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --stdin               Read stdin, write stdout")
	fmt.Fprintln(w, "  -k, --kind <s>            Stdin source kind: html, pdf, text")
	fmt.Fprintln(w)
	printOptionFlags(w)
}

// printPasteUsage prints usage for the paste command.
func printPasteUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: clip2md paste <subcommand> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Collect pastes in a session and render them with the current options.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  add                  Add the clipboard (or stdin) to the session")
	fmt.Fprintln(w, "  list                 List session entries")
	fmt.Fprintln(w, "  show [id...]         Render entries (all by default), joined by blank lines")
	fmt.Fprintln(w, "  clear                Remove all entries")
	fmt.Fprintln(w, "  replace <file.md>    Replace the session with edited Markdown (\"-\" = stdin)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Session:")
	fmt.Fprintln(w, "      --store <path>        Session database path")
	fmt.Fprintln(w, "      --stdin               add: read stdin instead of the clipboard")
	fmt.Fprintln(w, "      --html | --text | --pdf")
	fmt.Fprintln(w, "                            add: force the source kind")
	fmt.Fprintln(w, "  -o, --output <file>       show: write the result to a file")
	fmt.Fprintln(w, "      --copy                show: copy the result to the clipboard")
	fmt.Fprintln(w)
	printOptionFlags(w)
}

// printPrefsUsage prints usage for the prefs command.
func printPrefsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: clip2md prefs <show|save> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the effective configuration as YAML, or save it with the")
	fmt.Fprintln(w, "given option flags applied.")
	fmt.Fprintln(w)
	printOptionFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "paste":
		printPasteUsage(env.Stdout)
	case "prefs":
		printPrefsUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: clip2md version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: clip2md help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
