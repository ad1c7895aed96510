package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/openscad-lang/scadast/pkg/scadast"
)

var (
	ErrNoSourceFiles       = errors.New("no .scad source files found under the given path")
	ErrUnsupportedParseFmt = errors.New("unsupported format")
)

const (
	formatNone    = "none"
	formatCompact = "compact"
	formatTable   = "table"

	scadExtension = ".scad"
)

func parseCmd() *cobra.Command {
	var output, format string

	var workers int

	var progress, all bool

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse OpenSCAD source files into an AST",
		Long: `Parse OpenSCAD source files into the scadast AST.

Examples:
  scadast parse model.scad              # Parse a single file
  scadast parse *.scad                  # Parse all OpenSCAD files
  cat model.scad | scadast parse -      # Parse from stdin
  scadast parse -o out.json model.scad  # Save to file
  scadast parse -f none *.scad          # Parse only, skip serialization
  scadast parse --all                   # Parse every .scad file under the current directory
  scadast parse --all -w 8              # Parse with 8 parallel workers`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args, output, format, progress, all, workers, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, compact, table, none)")
	cmd.Flags().BoolVarP(&progress, "progress", "p", false, "show progress for multiple files")
	cmd.Flags().BoolVar(&all, "all", false, "parse every .scad file under the current directory recursively")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of parallel workers (default: number of CPUs)")

	return cmd
}

func runParse(files []string, output, format string, progress, all bool, workers int, writer io.Writer) error {
	batchStart := time.Now()

	if all {
		var err error

		files, err = collectSourceFiles(".")
		if err != nil {
			return fmt.Errorf("failed to collect source files: %w", err)
		}

		if len(files) == 0 {
			return ErrNoSourceFiles
		}
	}

	if len(files) == 0 {
		return parseStdin(output, format, writer)
	}

	if progress && len(files) > 1 {
		fmt.Fprintf(os.Stderr, "Parsing %d files...\n", len(files))
	}

	if len(files) > 1 && format == formatNone {
		if err := runParseParallel(files, progress, workers); err != nil {
			return err
		}

		if progress {
			printBatchSummary(files, batchStart)
		}

		return nil
	}

	for idx, file := range files {
		if progress {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", idx+1, len(files), sanitizeForTerminal(file))
		}

		if parseErr := parseFile(file, output, format, writer); parseErr != nil {
			return fmt.Errorf("failed to parse %s: %w", file, parseErr)
		}
	}

	if progress && len(files) > 1 {
		printBatchSummary(files, batchStart)
	}

	return nil
}

// printBatchSummary reports total bytes processed and elapsed wall time in
// human-readable form, so a `--all` run over a large source tree gives the
// operator a sense of scale without grepping byte counts.
func printBatchSummary(files []string, start time.Time) {
	var totalBytes int64

	for _, f := range files {
		if info, err := os.Stat(f); err == nil {
			totalBytes += info.Size()
		}
	}

	fmt.Fprintf(os.Stderr, "Processed %s across %d files in %s\n",
		humanize.Bytes(uint64(totalBytes)), len(files), time.Since(start).Round(time.Millisecond))
}

// runParseParallel processes files concurrently using a worker pool. Each
// worker creates its own Parser instance, since scadast.Parser is not safe
// for concurrent use (spec §5).
func runParseParallel(files []string, progress bool, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers > len(files) {
		workers = len(files)
	}

	fileCh := make(chan indexedFile, workers)

	var firstErr atomic.Value

	var completed atomic.Int64

	total := int64(len(files))

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			parser, perr := scadast.NewParser()
			if perr != nil {
				firstErr.CompareAndSwap(nil, perr)

				return
			}
			defer parser.Close()

			for item := range fileCh {
				if firstErr.Load() != nil {
					return
				}

				if err := parseOnly(parser, item.path); err != nil {
					firstErr.CompareAndSwap(nil, fmt.Errorf("failed to parse %s: %w", item.path, err))

					return
				}

				done := completed.Add(1)
				if progress {
					fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", done, total, sanitizeForTerminal(item.path))
				}
			}
		}()
	}

	for i, f := range files {
		if firstErr.Load() != nil {
			break
		}

		fileCh <- indexedFile{index: i, path: f}
	}

	close(fileCh)
	wg.Wait()

	if errVal := firstErr.Load(); errVal != nil {
		if err, ok := errVal.(error); ok {
			return err
		}
	}

	return nil
}

type indexedFile struct {
	index int
	path  string
}

func parseOnly(parser *scadast.Parser, file string) error {
	code, _, err := safeReadFile(file)
	if err != nil {
		return err
	}

	parsed, err := parser.Parse(code)
	if err != nil {
		return err
	}

	runtime.KeepAlive(parsed)

	return nil
}

func parseStdin(output, format string, writer io.Writer) error {
	code, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	parser, err := scadast.NewParser()
	if err != nil {
		return fmt.Errorf("failed to initialize parser: %w", err)
	}
	defer parser.Close()

	file, err := parser.Parse(code)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	return outputFile(file, output, format, writer)
}

func parseFile(file, output, format string, writer io.Writer) error {
	code, resolvedPath, err := safeReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", file, err)
	}

	parser, err := scadast.NewParser()
	if err != nil {
		return fmt.Errorf("failed to initialize parser: %w", err)
	}
	defer parser.Close()

	parsed, err := parser.Parse(code)
	if err != nil {
		return fmt.Errorf("parse error in %s: %w", resolvedPath, err)
	}

	if format == formatNone {
		runtime.KeepAlive(parsed)

		return nil
	}

	return outputFile(parsed, output, format, writer)
}

func outputFile(parsed *scadast.File, output, format string, writer io.Writer) error {
	if output != "" {
		outputFile, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer outputFile.Close()

		writer = outputFile
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")

		if err := enc.Encode(parsed); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	case formatCompact:
		if err := json.NewEncoder(writer).Encode(parsed); err != nil {
			return fmt.Errorf("failed to encode compact JSON: %w", err)
		}

		return nil
	case formatTable:
		renderStatementTable(parsed, writer)

		return nil
	case formatNone:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedParseFmt, format)
	}
}

// renderStatementTable prints one row per top-level statement plus one row
// per diagnostic, for a quick terminal overview of a parse without piping
// JSON through jq.
func renderStatementTable(parsed *scadast.File, writer io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(writer)
	tw.AppendHeader(table.Row{"#", "Kind", "Name", "Start Line", "End Line"})

	for i, stmt := range parsed.Statements {
		tw.AppendRow(table.Row{i + 1, stmt.Kind, stmt.Name, stmt.Span.Start.Line, stmt.Span.End.Line})
	}

	tw.Render()

	if len(parsed.Diagnostics) == 0 {
		return
	}

	fmt.Fprintln(writer)

	dw := table.NewWriter()
	dw.SetOutputMirror(writer)
	dw.AppendHeader(table.Row{"Level", "Code", "Message", "Line"})

	for _, d := range parsed.Diagnostics {
		dw.AppendRow(table.Row{d.Level, d.Code, d.Message, d.Span.Start.Line})
	}

	dw.Render()
}

func collectSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if isHiddenDir(filepath.Base(path)) {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(path) == scadExtension {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// isHiddenDir returns true for directories that start with a dot (e.g. .git),
// except for "." and ".." which are filesystem navigation entries.
func isHiddenDir(name string) bool {
	return name != ".." && len(name) > 1 && name[0] == '.'
}
