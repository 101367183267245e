package parser

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync/atomic"

	"github.com/chess99/mp-lens-sub000/internal/logger"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called after each file is processed. It may be called
// from several goroutines at once.
type ProgressFunc func(path string, done int)

// ExtractOptions tunes ExtractFiles.
type ExtractOptions struct {
	Workers  int
	Logger   logger.Logger
	Progress ProgressFunc
}

type extractOutcome struct {
	refs  *FileReferences
	issue *ParseIssue
}

// ExtractFiles reads and parses every file on a bounded worker pool. A file
// that cannot be read or parsed is logged, recorded as an issue and
// contributes no references; it never aborts the others. Only context
// cancellation is returned as an error.
func (r *Registry) ExtractFiles(ctx context.Context, files []string, opts ExtractOptions) (*ParseResult, error) {
	log := logger.OrNoop(opts.Logger)
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]extractOutcome, len(files))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		if _, ok := r.ExtractorForFile(path); !ok {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.extractOne(path)
			if opts.Progress != nil {
				opts.Progress(path, int(done.Add(1)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &ParseResult{
		Files:  make(map[string]*FileReferences, len(files)),
		Issues: make([]ParseIssue, 0),
	}
	for _, outcome := range outcomes {
		if outcome.issue != nil {
			log.Warnf("skipping references of %s: %s", outcome.issue.File, outcome.issue.Message)
			result.Issues = append(result.Issues, *outcome.issue)
		}
		if outcome.refs != nil {
			result.Files[outcome.refs.Path] = outcome.refs
		}
	}
	sort.Slice(result.Issues, func(i, j int) bool {
		return result.Issues[i].File < result.Issues[j].File
	})
	return result, nil
}

func (r *Registry) extractOne(path string) (out extractOutcome) {
	format := ""
	if e, ok := r.ExtractorForFile(path); ok {
		format = e.Format()
	}
	fail := func(err error) extractOutcome {
		return extractOutcome{issue: &ParseIssue{
			File:     path,
			Format:   format,
			Severity: "error",
			Message:  err.Error(),
		}}
	}

	// panics are reported as an issue for this file only
	defer func() {
		if rec := recover(); rec != nil {
			out = fail(fmt.Errorf("extractor panic: %v", rec))
		}
	}()

	content, err := os.ReadFile(path)
	if err != nil {
		return fail(err)
	}
	refs, err := r.ExtractContent(path, content)
	if err != nil {
		return fail(err)
	}
	return extractOutcome{refs: refs}
}
