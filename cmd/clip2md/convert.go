package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clip2md "github.com/alnah/go-clip2md"
	"github.com/alnah/go-clip2md/internal/config"
	"github.com/alnah/go-clip2md/internal/fileutil"
	"github.com/alnah/go-clip2md/internal/hints"
	"github.com/alnah/go-clip2md/internal/pipeline"
)

// outputFilePerm is used for converted files.
const outputFilePerm = 0o644 // rw-r--r--: converted text is meant to be readable

// EntryConverter is the interface for the conversion service.
type EntryConverter interface {
	ConvertEntry(ctx context.Context, entry clip2md.RawEntry, opts clip2md.Options) (string, error)
	EntryFromMarkdown(markdown string) (clip2md.RawEntry, error)
}

// Compile-time interface implementation check.
var _ EntryConverter = (*clip2md.Converter)(nil)

// fileKinds maps supported input extensions to source kinds.
// Markdown files are rendered to HTML first, then take the HTML path.
var fileKinds = map[string]clip2md.SourceKind{
	".html":     clip2md.SourceHTML,
	".htm":      clip2md.SourceHTML,
	".md":       clip2md.SourceHTML,
	".markdown": clip2md.SourceHTML,
	".txt":      clip2md.SourceText,
}

// isMarkdownPath reports whether path names a Markdown file.
func isMarkdownPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
	Kind       clip2md.SourceKind
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// runConvert orchestrates the convert command.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common.config, &flags.options, false)
	if err != nil {
		return err
	}

	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return err
	}

	conv := clip2md.NewConverter()

	if flags.stdin {
		return convertStdin(ctx, conv, flags.kind, opts, env)
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir, outputExtension(opts.Output))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no convertible files found in %s", ErrNoInput, inputPath)
	}

	workers := flags.workers
	if workers == 0 {
		workers = cfg.Workers
	}
	workers = clip2md.ResolveWorkers(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", workers)
	}

	results := convertBatch(ctx, conv, workers, files, opts, env.Now)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}
	return nil
}

// convertStdin converts stdin and writes the result to stdout.
func convertStdin(ctx context.Context, conv EntryConverter, kindName string, opts clip2md.Options, env *Environment) error {
	kind, err := clip2md.ParseSourceKind(kindName)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return fmt.Errorf("%w: stdin is empty", ErrNoInput)
	}

	out, err := conv.ConvertEntry(ctx, clip2md.RawEntry{ID: "stdin", Kind: kind, Content: string(data)}, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, out)
	return nil
}

// resolveInputPath returns the positional input or the configured default directory.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	}
	return "", fmt.Errorf("%w: pass a file or directory, or use --stdin", ErrNoInput)
}

// resolveOutputDir returns the output directory: flag first, then config.
// Empty means next to each input.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > clip2md.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, clip2md.MaxWorkers)
	}
	return nil
}

// kindForPath returns the source kind for a file by extension.
func kindForPath(path string) (clip2md.SourceKind, bool) {
	kind, ok := fileKinds[strings.ToLower(filepath.Ext(path))]
	return kind, ok
}

// discoverFiles finds all files to convert under inputPath. Directory
// structure is mirrored under outputDir. Files whose output would overwrite
// them are skipped in directories and rejected when named directly.
func discoverFiles(inputPath, outputDir, ext string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		kind, ok := kindForPath(inputPath)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, filepath.Ext(inputPath))
		}
		outPath, err := fileutil.OutputPath(inputPath, outputDir, ext)
		if err != nil {
			return nil, err
		}
		if samePath(inputPath, outPath) {
			return nil, fmt.Errorf("%w: %s (use --output)", ErrOutputIsInput, inputPath)
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath, Kind: kind}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		kind, ok := kindForPath(path)
		if !ok {
			return nil
		}

		outDir := outputDir
		if outDir != "" {
			if rel, err := filepath.Rel(inputPath, filepath.Dir(path)); err == nil {
				outDir = filepath.Join(outputDir, rel)
			}
		}
		outPath, err := fileutil.OutputPath(path, outDir, ext)
		if err != nil {
			return err
		}
		if samePath(path, outPath) {
			return nil
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath, Kind: kind})
		return nil
	})

	return files, err
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// convertBatch processes files concurrently with the given number of workers.
func convertBatch(ctx context.Context, conv EntryConverter, workers int, files []FileToConvert, opts clip2md.Options, now func() time.Time) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], opts, now)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv EntryConverter, f FileToConvert, opts clip2md.Options, now func() time.Time) ConversionResult {
	start := now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = now().Sub(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	entry := clip2md.RawEntry{ID: f.InputPath, Kind: f.Kind, Content: string(content)}
	if isMarkdownPath(f.InputPath) {
		if entry, err = conv.EntryFromMarkdown(string(content)); err != nil {
			return done(err)
		}
	}
	if entry.Kind == clip2md.SourceHTML {
		// Links stay valid when the output lands in another directory
		if rebased, err := pipeline.RebaseRelativePaths(entry.Content, filepath.Dir(f.InputPath), filepath.Dir(f.OutputPath)); err == nil {
			entry.Content = rebased
		}
	}
	out, err := conv.ConvertEntry(ctx, entry, opts)
	if err != nil {
		return done(err)
	}
	if out != "" {
		out += "\n"
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(out), outputFilePerm); err != nil {
		return done(fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory()))
	}

	return done(nil)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
