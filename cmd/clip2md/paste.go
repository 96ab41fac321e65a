package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	clip2md "github.com/alnah/go-clip2md"
	"github.com/alnah/go-clip2md/internal/fileutil"
	"github.com/alnah/go-clip2md/internal/hints"
	"github.com/alnah/go-clip2md/internal/store"
)

// previewLength is the number of characters shown per entry by paste list.
const previewLength = 50

// htmlStart matches content that opens with a common HTML tag or doctype.
var htmlStart = regexp.MustCompile(`(?i)^\s*<(!doctype|html|head|body|meta|div|p|span|h[1-6]|ul|ol|li|table|section|article|b|i|strong|em|a|br|pre|code|blockquote)[\s/>]`)

// pasteSubcommands lists the paste subcommands.
var pasteSubcommands = map[string]bool{
	"add": true, "list": true, "show": true, "clear": true, "replace": true,
}

// runPaste dispatches a paste subcommand against the session store.
func runPaste(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printPasteUsage(env.Stderr)
		return fmt.Errorf("%w: missing paste subcommand", ErrUsage)
	}

	sub, rest := args[0], args[1:]
	if !pasteSubcommands[sub] {
		if sub == "-h" || sub == "--help" {
			printPasteUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: unknown paste subcommand %q", ErrUsage, sub)
	}

	flags, positional, err := parsePasteFlags(rest, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common.config, &flags.options, false)
	if err != nil {
		return err
	}
	if flags.store != "" {
		cfg.Store.Path = flags.store
	}

	st, err := env.OpenStore(ctx, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrStoreAccess, err, hints.ForStore())
	}
	defer st.Close()

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Session: %s\n", st.Path())
	}

	switch sub {
	case "add":
		return pasteAdd(ctx, st, flags, env)
	case "list":
		return pasteList(ctx, st, env)
	case "show":
		opts, err := optionsFromConfig(cfg)
		if err != nil {
			return err
		}
		return pasteShow(ctx, st, positional, flags, opts, env)
	case "clear":
		return pasteClear(ctx, st, flags, env)
	default:
		return pasteReplace(ctx, st, positional, flags, env)
	}
}

// forcedKind returns the kind chosen by --html, --text or --pdf, or "".
func forcedKind(flags *pasteFlags) (clip2md.SourceKind, error) {
	var kind clip2md.SourceKind
	count := 0
	if flags.html {
		kind = clip2md.SourceHTML
		count++
	}
	if flags.text {
		kind = clip2md.SourceText
		count++
	}
	if flags.pdf {
		kind = clip2md.SourcePDF
		count++
	}
	if count > 1 {
		return "", ErrConflictingKinds
	}
	return kind, nil
}

// routeEntry builds an entry from pasted content. sniffHTML treats content
// opening with an HTML tag as the HTML variant; clipboard text is always the
// plain variant. A forced kind overrides routing.
func routeEntry(content string, forced clip2md.SourceKind, sniffHTML bool) (clip2md.RawEntry, bool) {
	var entry clip2md.RawEntry
	var ok bool
	if sniffHTML && htmlStart.MatchString(content) {
		entry, ok = clip2md.EntryFromClipboard(content, "")
	} else {
		entry, ok = clip2md.EntryFromClipboard("", content)
	}
	if ok && forced != "" {
		entry.Kind = forced
	}
	return entry, ok
}

func pasteAdd(ctx context.Context, st *store.Store, flags *pasteFlags, env *Environment) error {
	forced, err := forcedKind(flags)
	if err != nil {
		return err
	}

	var content string
	if flags.stdin {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		content = string(data)
	} else {
		text, ok := env.Clipboard.ReadText()
		if !ok {
			return fmt.Errorf("%w%s", ErrEmptyClipboard, hints.ForClipboard())
		}
		content = text
	}

	entry, ok := routeEntry(content, forced, flags.stdin)
	if !ok {
		return fmt.Errorf("%w: stdin is empty", ErrNoInput)
	}

	stored, err := st.Add(ctx, store.Entry{ID: entry.ID, Kind: string(entry.Kind), Content: entry.Content})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreAccess, err)
	}
	n, err := st.Count(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreAccess, err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Added %s entry %s (%d in session)\n", stored.Kind, shortID(stored.ID), n)
	}
	return nil
}

func pasteList(ctx context.Context, st *store.Store, env *Environment) error {
	entries, err := st.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreAccess, err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(env.Stdout, "Session is empty")
		return nil
	}

	for i, e := range entries {
		fmt.Fprintf(env.Stdout, "%2d  %s  %-4s  %s  %s\n",
			i+1, shortID(e.ID), e.Kind, e.CreatedAt.Format("2006-01-02 15:04"), preview(e.Content, previewLength))
	}
	return nil
}

// pasteShow re-renders stored entries with the current options.
func pasteShow(ctx context.Context, st *store.Store, ids []string, flags *pasteFlags, opts clip2md.Options, env *Environment) error {
	stored, err := showEntries(ctx, st, ids)
	if err != nil {
		return err
	}

	entries := make([]clip2md.RawEntry, 0, len(stored))
	for _, e := range stored {
		kind, err := clip2md.ParseSourceKind(e.Kind)
		if err != nil {
			return fmt.Errorf("%w: entry %s: %v", ErrStoreAccess, e.ID, err)
		}
		entries = append(entries, clip2md.RawEntry{ID: e.ID, Kind: kind, Content: e.Content})
	}

	out, err := clip2md.NewConverter().ConvertEntries(ctx, entries, opts)
	if err != nil {
		return err
	}

	if flags.output == "" && !flags.copy {
		fmt.Fprintln(env.Stdout, out)
		return nil
	}

	if flags.output != "" {
		if err := fileutil.WriteFileAtomic(flags.output, []byte(out+"\n"), outputFilePerm); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
		}
	}

	if flags.copy {
		if err := env.Clipboard.WriteText(out); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForClipboard())
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Copied %d entries to clipboard\n", len(entries))
		}
	}
	return nil
}

// showEntries returns the entries named by ID prefix, in argument order,
// or the whole session when no ID is given.
func showEntries(ctx context.Context, st *store.Store, ids []string) ([]store.Entry, error) {
	if len(ids) == 0 {
		stored, err := st.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreAccess, err)
		}
		if len(stored) == 0 {
			return nil, fmt.Errorf("%w%s", ErrEmptySession, hints.ForEmptySession())
		}
		return stored, nil
	}

	stored := make([]store.Entry, 0, len(ids))
	for _, id := range ids {
		e, err := st.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		stored = append(stored, e)
	}
	return stored, nil
}

func pasteClear(ctx context.Context, st *store.Store, flags *pasteFlags, env *Environment) error {
	n, err := st.Clear(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreAccess, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Cleared %d entries\n", n)
	}
	return nil
}

// pasteReplace swaps the session for a single entry rendered from edited
// Markdown, read from a file or from stdin when the path is "-".
func pasteReplace(ctx context.Context, st *store.Store, args []string, flags *pasteFlags, env *Environment) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: paste replace takes one Markdown file (\"-\" for stdin)", ErrUsage)
	}

	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(env.Stdin)
	} else {
		data, err = os.ReadFile(args[0]) // #nosec G304 -- user-provided path
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	entry, err := clip2md.NewConverter().EntryFromMarkdown(string(data))
	if err != nil {
		return err
	}

	stored, err := st.ReplaceWith(ctx, store.Entry{ID: entry.ID, Kind: string(entry.Kind), Content: entry.Content})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreAccess, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Session replaced with entry %s\n", shortID(stored.ID))
	}
	return nil
}

// shortID returns the first 8 characters of an entry ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// preview returns content on one line, truncated to n characters.
func preview(content string, n int) string {
	line := strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(line) <= n {
		return line
	}
	runes := []rune(line)
	return string(runes[:n]) + "..."
}
