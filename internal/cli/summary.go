package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/chess99/mp-lens-sub000/internal/analyzer"
	"github.com/chess99/mp-lens-sub000/internal/fileutil"
)

type UnusedSummary struct {
	Mode        string   `json:"mode"`
	RootPath    string   `json:"root_path"`
	MiniAppRoot string   `json:"miniapp_root"`
	Scanned     int      `json:"scanned"`
	Entries     int      `json:"entries"`
	Issues      int      `json:"issues"`
	Unused      int      `json:"unused"`
	DurationMS  int64    `json:"duration_ms"`
	UnusedFiles []string `json:"unused_files"`
	EntryFiles  []string `json:"entry_files,omitempty"`
}

// NewUnusedSummary converts a result into root-relative, slash-separated
// paths.
func NewUnusedSummary(result *analyzer.Result, durationMS int64) UnusedSummary {
	root := result.Structure.RootDirectory
	return UnusedSummary{
		Mode:        "unused",
		RootPath:    root,
		MiniAppRoot: result.Structure.MiniAppRoot,
		Scanned:     result.Scanned,
		Entries:     len(result.EntryFiles),
		Issues:      len(result.Issues),
		Unused:      len(result.UnusedFiles),
		DurationMS:  durationMS,
		UnusedFiles: relativePaths(root, result.UnusedFiles),
		EntryFiles:  relativePaths(root, result.EntryFiles),
	}
}

func PrintUnusedSummary(w io.Writer, summary UnusedSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(w, summary)
	}

	fmt.Fprintf(
		w,
		"%s: scanned=%d entries=%d unused=%d issues=%d duration=%dms\n",
		summary.Mode,
		summary.Scanned,
		summary.Entries,
		summary.Unused,
		summary.Issues,
		summary.DurationMS,
	)
	if len(summary.UnusedFiles) == 0 {
		fmt.Fprintln(w, "no unused files")
		return nil
	}
	for _, path := range summary.UnusedFiles {
		fmt.Fprintf(w, "  %s\n", path)
	}
	return nil
}

func relativePaths(root string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}
