// Package ignore matches project-relative paths against gitignore-style
// glob rules. It backs both the scan exclusions and the keep-asset list.
package ignore

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultExcludes are never scanned unless a user rule negates them.
var DefaultExcludes = []string{
	".git/",
	".svn/",
	".idea/",
	".vscode/",
	"node_modules/",
	"miniprogram_npm/",
	"dist/",
	"unpackage/",
	"coverage/",
	".mp-lens/",
}

type rule struct {
	pattern  string
	negated  bool
	dirOnly  bool
	anchored bool
	re       *regexp.Regexp
}

// Matcher applies gitignore-like rules with "last rule wins" behavior.
type Matcher struct {
	rules []rule
}

// NewMatcher builds the scan exclusion matcher. DefaultExcludes are
// prepended and can be overridden by user negation rules.
func NewMatcher(userRules []string) *Matcher {
	all := make([]string, 0, len(DefaultExcludes)+len(userRules))
	all = append(all, DefaultExcludes...)
	all = append(all, userRules...)
	return NewPatternMatcher(all)
}

// NewPatternMatcher builds a matcher from patterns only, without defaults.
func NewPatternMatcher(patterns []string) *Matcher {
	rules := make([]rule, 0, len(patterns))
	for _, line := range patterns {
		if parsed, ok := parseRule(line); ok {
			rules = append(rules, parsed)
		}
	}
	return &Matcher{rules: rules}
}

// Empty reports whether the matcher has no rules at all.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.rules) == 0
}

// ShouldIgnore returns true when relPath should be excluded.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	if m.Empty() {
		return false
	}
	relPath = normalizePath(relPath)
	ignored := false
	for _, rule := range m.rules {
		if ruleMatches(rule, relPath, isDir) {
			ignored = !rule.negated
		}
	}
	return ignored
}

// MatchFile is ShouldIgnore for a regular file.
func (m *Matcher) MatchFile(relPath string) bool {
	return m.ShouldIgnore(relPath, false)
}

func parseRule(line string) (rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}

	parsed := rule{}
	if strings.HasPrefix(line, "!") {
		parsed.negated = true
		line = strings.TrimPrefix(line, "!")
	}
	if strings.HasPrefix(line, "/") {
		parsed.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	if strings.HasSuffix(line, "/") {
		parsed.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	line = normalizePath(line)
	if line == "" {
		return rule{}, false
	}
	re, err := regexp.Compile("^" + globToRegex(line) + "$")
	if err != nil {
		return rule{}, false
	}
	parsed.pattern = line
	parsed.re = re
	return parsed, true
}

func ruleMatches(rule rule, relPath string, isDir bool) bool {
	if rule.dirOnly {
		if isDir {
			relPath += "/_"
		}
		return matchDirectoryPattern(rule, relPath)
	}

	if rule.anchored {
		return rule.re.MatchString(relPath)
	}

	if strings.Contains(rule.pattern, "/") {
		if rule.re.MatchString(relPath) {
			return true
		}
		parts := strings.Split(relPath, "/")
		for i := 1; i < len(parts); i++ {
			if rule.re.MatchString(strings.Join(parts[i:], "/")) {
				return true
			}
		}
		return false
	}

	for _, segment := range strings.Split(relPath, "/") {
		if rule.re.MatchString(segment) {
			return true
		}
	}
	return false
}

func matchDirectoryPattern(rule rule, relPath string) bool {
	parts := strings.Split(relPath, "/")
	// the last segment of a file path is never a directory
	for i := 0; i < len(parts)-1; i++ {
		if rule.anchored {
			if rule.re.MatchString(strings.Join(parts[:i+1], "/")) {
				return true
			}
			continue
		}
		if rule.re.MatchString(parts[i]) || rule.re.MatchString(strings.Join(parts[:i+1], "/")) {
			return true
		}
	}
	return false
}

func globToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]

		if ch == '*' {
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				// "**/" also matches zero directories
				if i+2 < len(pattern) && pattern[i+2] == '/' {
					b.WriteString("(?:.*/)?")
					i += 2
					continue
				}
				b.WriteString(".*")
				i++
				continue
			}
			b.WriteString("[^/]*")
			continue
		}

		if ch == '?' {
			b.WriteString("[^/]")
			continue
		}

		if strings.ContainsRune(`.+()|[]{}^$\\`, rune(ch)) {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")
	return path
}
