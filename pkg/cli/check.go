// Package cli implements the jsonls subcommands: batch validation,
// schema listing, the language server and the MCP server.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sourcegraph/conc/pool"

	"github.com/jsonls/jsonls/internal/spanmap"
	"github.com/jsonls/jsonls/pkg/console"
	"github.com/jsonls/jsonls/pkg/constants"
	"github.com/jsonls/jsonls/pkg/parser"
	"github.com/jsonls/jsonls/pkg/protocol"
	"github.com/jsonls/jsonls/pkg/schemas"
)

// CheckOptions configures a batch validation run.
type CheckOptions struct {
	SchemaDir  string
	SchemaName string // overrides per-document schema resolution
	ConfigPath string
	Watch      bool
	Verbose    bool
}

// fileResult is the outcome of validating one file.
type fileResult struct {
	path        string
	text        string
	diagnostics []protocol.Diagnostic
	err         error
}

// CheckFiles validates the given files and renders diagnostics to
// stdout. It returns an error when any file fails validation, so the
// process exits non-zero for CI use.
func CheckFiles(files []string, opts CheckOptions) error {
	if len(files) == 0 {
		return fmt.Errorf("no files to check")
	}

	cfg, err := schemas.LoadConfig(configPath(opts))
	if err != nil {
		return err
	}
	if opts.SchemaDir != "" {
		cfg.SchemaDir = opts.SchemaDir
	}
	store := schemas.NewStore(cfg.SchemaDir)

	if opts.Watch {
		return watchFiles(store, cfg, files, opts)
	}

	results := checkAll(store, cfg, files, opts)
	return renderResults(results, opts)
}

func configPath(opts CheckOptions) string {
	if opts.ConfigPath != "" {
		return opts.ConfigPath
	}
	return constants.ConfigFileName
}

// checkAll validates files in parallel. Rendering stays sequential so
// output is deterministic.
func checkAll(store *schemas.Store, cfg *schemas.Config, files []string, opts CheckOptions) []fileResult {
	spin := console.NewSpinner(fmt.Sprintf("Validating %d file(s)...", len(files)))
	spin.Start()
	defer spin.Stop()

	pipeline := parser.NewPipeline(parser.WithResolver(spanmap.NewResolver()))

	p := pool.NewWithResults[fileResult]()
	for _, path := range files {
		path := path
		p.Go(func() fileResult {
			return checkOne(pipeline, store, cfg, path, opts)
		})
	}
	results := p.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })
	return results
}

func checkOne(pipeline *parser.Pipeline, store *schemas.Store, cfg *schemas.Config, path string, opts CheckOptions) fileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileResult{path: path, err: fmt.Errorf("failed to read %s: %w", path, err)}
	}
	text := string(data)

	name := opts.SchemaName
	if name == "" {
		name = resolveSchemaName(cfg, path, text)
	}
	schema, err := store.Get(name)
	if err != nil {
		return fileResult{path: path, text: text, err: fmt.Errorf("schema %q: %w", name, err)}
	}

	return fileResult{
		path:        path,
		text:        text,
		diagnostics: pipeline.ValidateCompiled(schema, text),
	}
}

// resolveSchemaName mirrors the server's resolution order: document
// declaration, filename mapping, default.
func resolveSchemaName(cfg *schemas.Config, path, text string) string {
	if name, ok := schemas.ExtractRef(text); ok {
		return name
	}
	if name, ok := cfg.SchemaFor(path); ok {
		return name
	}
	return constants.DefaultSchemaName
}

func renderResults(results []fileResult, opts CheckOptions) error {
	var failed, errored int
	for _, r := range results {
		switch {
		case r.err != nil:
			errored++
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(r.err.Error()))
		case len(r.diagnostics) > 0:
			failed++
			for _, d := range r.diagnostics {
				fmt.Print(console.FormatDiagnostic(toSourceDiagnostic(r.path, r.text, d)))
			}
		case opts.Verbose:
			fmt.Println(console.FormatSuccessMessage(r.path))
		}
	}

	passed := len(results) - failed - errored
	fmt.Println(console.FormatCountMessage(fmt.Sprintf("%d file(s) checked: %d passed, %d failed, %d errored",
		len(results), passed, failed, errored)))

	if failed > 0 || errored > 0 {
		return fmt.Errorf("validation failed for %d of %d file(s)", failed+errored, len(results))
	}
	return nil
}

// toSourceDiagnostic converts a protocol diagnostic to the renderable
// form, pulling context lines out of the document.
func toSourceDiagnostic(path, text string, d protocol.Diagnostic) console.SourceDiagnostic {
	severity := "error"
	switch d.Severity {
	case protocol.SeverityWarning:
		severity = "warning"
	case protocol.SeverityInformation, protocol.SeverityHint:
		severity = "info"
	}

	return console.SourceDiagnostic{
		Position: console.Position{
			File:   path,
			Line:   int(d.Range.Start.Line) + 1,
			Column: int(d.Range.Start.Character) + 1,
		},
		Type:    severity,
		Message: d.Message,
		Context: contextLines(text, int(d.Range.Start.Line)),
	}
}

// contextLines returns three source lines centered on the zero-based
// line, padded at document edges so the window stays centered.
func contextLines(text string, line int) []string {
	lines := strings.Split(text, "\n")
	if line < 0 || line >= len(lines) {
		return nil
	}

	out := make([]string, 0, 3)
	for i := line - 1; i <= line+1; i++ {
		if i < 0 || i >= len(lines) {
			out = append(out, "")
			continue
		}
		out = append(out, lines[i])
	}
	return out
}

// watchFiles re-validates files as they change, debouncing bursts of
// editor writes. It blocks until interrupted.
func watchFiles(store *schemas.Store, cfg *schemas.Config, files []string, opts CheckOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch parent directories; editors often replace files on save.
	watched := make(map[string]bool)
	tracked := make(map[string]bool)
	for _, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		tracked[abs] = true
		dir := filepath.Dir(abs)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			watched[dir] = true
		}
	}

	fmt.Printf("Watching %d file(s) for changes...\n", len(files))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	const debounceDelay = 300 * time.Millisecond
	var debounceTimer *time.Timer
	modified := make(map[string]struct{})

	// Initial pass over everything.
	_ = renderResults(checkAll(store, cfg, files, opts), opts)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !tracked[abs] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			modified[abs] = struct{}{}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				changed := make([]string, 0, len(modified))
				for path := range modified {
					changed = append(changed, path)
				}
				modified = make(map[string]struct{})

				fmt.Println(console.FormatProgressMessage(fmt.Sprintf("Re-checking %d file(s)...", len(changed))))
				_ = renderResults(checkAll(store, cfg, changed, opts), opts)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if opts.Verbose {
				fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("watcher error: %v", err)))
			}

		case <-sigChan:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil
		}
	}
}
