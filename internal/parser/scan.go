package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/chess99/mp-lens-sub000/internal/fileutil"
	"github.com/chess99/mp-lens-sub000/internal/ignore"
)

// ScanDirectory walks root once and returns the absolute paths of every
// regular file whose extension is in fileTypes and that the matcher does not
// exclude. Walk errors below root are reported as issues, not failures.
func ScanDirectory(root string, fileTypes []string, matcher *ignore.Matcher) ([]string, []ParseIssue, error) {
	files := make([]string, 0)
	issues := make([]ParseIssue, 0)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			issues = append(issues, ParseIssue{
				File:     path,
				Severity: "warning",
				Message:  fmt.Sprintf("walk error: %v", err),
			})
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		if relPath == "." {
			return nil
		}
		if matcher.ShouldIgnore(relPath, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		if !fileutil.HasExtension(path, fileTypes) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, issues, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(files)
	return files, issues, nil
}
