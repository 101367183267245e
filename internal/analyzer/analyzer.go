// Package analyzer runs the unused-file analysis: scan, parallel
// extraction, graph assembly, entry resolution and reachability.
package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/chess99/mp-lens-sub000/internal/config"
	"github.com/chess99/mp-lens-sub000/internal/graph"
	"github.com/chess99/mp-lens-sub000/internal/ignore"
	"github.com/chess99/mp-lens-sub000/internal/languages"
	"github.com/chess99/mp-lens-sub000/internal/logger"
	"github.com/chess99/mp-lens-sub000/internal/manifest"
	"github.com/chess99/mp-lens-sub000/internal/parser"
	"github.com/chess99/mp-lens-sub000/internal/project"
	"github.com/chess99/mp-lens-sub000/internal/resolver"
)

// Result is the output of one analysis run. UnusedFiles and EntryFiles hold
// sorted absolute paths.
type Result struct {
	Structure   *graph.ProjectStructure `json:"structure"`
	UnusedFiles []string                `json:"unusedFiles"`
	EntryFiles  []string                `json:"entryFiles"`
	Issues      []parser.ParseIssue     `json:"issues"`
	Scanned     int                     `json:"scanned"`
}

// Analyzer runs analyses for one set of options.
type Analyzer struct {
	opts     config.Options
	log      logger.Logger
	registry *parser.Registry
	progress parser.ProgressFunc
}

// New creates an analyzer. A nil logger discards output.
func New(opts config.Options, log logger.Logger) *Analyzer {
	return &Analyzer{
		opts:     opts,
		log:      logger.OrNoop(log),
		registry: languages.NewDefaultRegistry(),
	}
}

// WithProgress reports per-file extraction progress to fn.
func (a *Analyzer) WithProgress(fn parser.ProgressFunc) *Analyzer {
	a.progress = fn
	return a
}

// Analyze runs the whole pipeline. Only *ConfigurationError,
// *EntryPointError and context cancellation are returned; every other
// problem is logged and recorded in Result.Issues.
func (a *Analyzer) Analyze(ctx context.Context) (*Result, error) {
	opts := a.opts
	if err := opts.Normalize(); err != nil {
		return nil, &ConfigurationError{Path: a.opts.RootDirectory, Reason: "invalid root directory", Err: err}
	}
	if err := requireDir(opts.RootDirectory, "root directory does not exist"); err != nil {
		return nil, err
	}
	if err := requireDir(opts.MiniAppRoot, "mini-app root does not exist"); err != nil {
		return nil, err
	}

	tsAliases, err := config.LoadTSConfigAliases(opts.RootDirectory)
	if err != nil {
		a.log.Warnf("ignoring path aliases: %v", err)
	}
	opts.MergeAliases(tsAliases)

	files, issues, err := parser.ScanDirectory(opts.RootDirectory, opts.FileTypes, ignore.NewMatcher(opts.ExcludePatterns))
	if err != nil {
		return nil, &ConfigurationError{Path: opts.RootDirectory, Reason: "cannot scan root directory", Err: err}
	}
	for _, issue := range issues {
		a.log.Warnf("%s: %s", issue.File, issue.Message)
	}
	a.log.Tracef("scanned %d files under %s; extractors cover %s", len(files), opts.RootDirectory, strings.Join(a.registry.SupportedExtensions(), " "))

	extracted, err := a.registry.ExtractFiles(ctx, files, parser.ExtractOptions{
		Workers:  opts.Workers,
		Logger:   a.log,
		Progress: a.progress,
	})
	if err != nil {
		return nil, err
	}
	issues = append(issues, extracted.Issues...)

	rootManifest, manifestPath := a.loadRootManifest(opts)

	built := project.NewBuilder(resolver.New(opts.MiniAppRoot, opts.Aliases), a.log).Build(project.Input{
		RootDirectory: opts.RootDirectory,
		MiniAppRoot:   opts.MiniAppRoot,
		Files:         files,
		References:    extracted.Files,
		Manifest:      rootManifest,
		ManifestPath:  manifestPath,
	})

	seeds := EntryPoints(opts, built, extracted.Files)
	if len(seeds) == 0 {
		return nil, &EntryPointError{MiniAppRoot: opts.MiniAppRoot}
	}

	reachable := built.Graph.Reachable(seeds)
	unused := filterKept(built.Graph.Unreachable(reachable), opts)

	entryFiles := make([]string, 0, len(seeds))
	for _, id := range seeds {
		if isModule(built.Graph, id) {
			entryFiles = append(entryFiles, id)
		}
	}

	return &Result{
		Structure:   built.Structure,
		UnusedFiles: unused,
		EntryFiles:  entryFiles,
		Issues:      issues,
		Scanned:     len(files),
	}, nil
}

// loadRootManifest picks the root manifest: EntryContent, then EntryFile,
// then <miniapp>/app.json. There is no fallback between sources. Failures
// are logged and yield a nil manifest.
func (a *Analyzer) loadRootManifest(opts config.Options) (*manifest.Manifest, string) {
	path := opts.EntryFile
	if path == "" {
		path = filepath.Join(opts.MiniAppRoot, "app.json")
	}

	var (
		m   *manifest.Manifest
		err error
	)
	if len(opts.EntryContent) > 0 {
		m, err = manifest.Parse(opts.EntryContent)
		if err != nil {
			a.log.Warnf("%v; continuing without pages and components", &ManifestError{Path: "<entry content>", Err: err})
			return nil, path
		}
		return m, path
	}

	m, err = manifest.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = errors.New("not found")
		}
		a.log.Warnf("%v; continuing without pages and components", &ManifestError{Path: path, Err: err})
		return nil, path
	}
	return m, path
}

func filterKept(unused []string, opts config.Options) []string {
	keep := ignore.NewPatternMatcher(opts.KeepAssets)
	if keep.Empty() {
		return unused
	}
	out := make([]string, 0, len(unused))
	for _, path := range unused {
		if matchesUnder(keep, opts.RootDirectory, path) || matchesUnder(keep, opts.MiniAppRoot, path) {
			continue
		}
		out = append(out, path)
	}
	return out
}

func matchesUnder(m *ignore.Matcher, base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return m.MatchFile(rel)
}

func requireDir(path, reason string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ConfigurationError{Path: path, Reason: reason, Err: err}
	}
	if !info.IsDir() {
		return &ConfigurationError{Path: path, Reason: reason + " (not a directory)"}
	}
	return nil
}
