// Package resolver turns raw references found in source files into
// absolute on-disk paths.
package resolver

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chess99/mp-lens-sub000/internal/fileutil"
	lru "github.com/hashicorp/golang-lru/v2"
)

const statCacheSize = 8192

// Resolver resolves references against a mini-app root and an alias table.
// It is safe for concurrent use.
type Resolver struct {
	miniAppRoot string
	aliases     []alias
	stats       *lru.Cache[string, bool]
}

type alias struct {
	prefix string
	target string
}

// New creates a resolver. Alias targets must be absolute; a target ending in
// a path separator is a directory prefix.
func New(miniAppRoot string, aliases map[string]string) *Resolver {
	r := &Resolver{miniAppRoot: filepath.Clean(miniAppRoot)}

	for prefix, target := range aliases {
		if prefix == "" || target == "" {
			continue
		}
		r.aliases = append(r.aliases, alias{prefix: prefix, target: target})
	}
	sort.Slice(r.aliases, func(i, j int) bool {
		if len(r.aliases[i].prefix) != len(r.aliases[j].prefix) {
			return len(r.aliases[i].prefix) > len(r.aliases[j].prefix)
		}
		return r.aliases[i].prefix < r.aliases[j].prefix
	})

	// only fails for a non-positive size
	r.stats, _ = lru.New[string, bool](statCacheSize)
	return r
}

// MiniAppRoot returns the directory root-relative references resolve against.
func (r *Resolver) MiniAppRoot() string {
	return r.miniAppRoot
}

// Skippable reports references that are never resolved: template
// placeholders, data URIs and remote URLs.
func Skippable(ref string) bool {
	return fileutil.IsExternalRef(ref)
}

// Resolve returns the first existing file rawRef points to, probing
// allowedExtensions in order. A miss is not an error.
func (r *Resolver) Resolve(rawRef, fromFile string, allowedExtensions []string) (string, bool) {
	if Skippable(rawRef) {
		return "", false
	}
	ref := cleanRef(rawRef)
	if ref == "" {
		return "", false
	}

	if base, ok := r.aliasBase(ref); ok {
		if resolved, ok := r.probe(base, allowedExtensions); ok {
			return resolved, true
		}
	}
	return r.probe(r.base(ref, fromFile), allowedExtensions)
}

// ResolveBase returns the absolute base path rawRef denotes without probing
// extensions. Aliases win when their target directory exists.
func (r *Resolver) ResolveBase(rawRef, fromFile string) (string, bool) {
	if Skippable(rawRef) {
		return "", false
	}
	ref := cleanRef(rawRef)
	if ref == "" {
		return "", false
	}
	if base, ok := r.aliasBase(ref); ok && r.existsDir(filepath.Dir(base)) {
		return base, true
	}
	return r.base(ref, fromFile), true
}

// Exists reports whether path is an existing regular file.
func (r *Resolver) Exists(path string) bool {
	if cached, ok := r.stats.Get(path); ok {
		return cached
	}
	info, err := os.Stat(path)
	exists := err == nil && info.Mode().IsRegular()
	r.stats.Add(path, exists)
	return exists
}

func (r *Resolver) existsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (r *Resolver) base(ref, fromFile string) string {
	if strings.HasPrefix(ref, "/") {
		return filepath.Join(r.miniAppRoot, filepath.FromSlash(ref))
	}
	return filepath.Join(filepath.Dir(fromFile), filepath.FromSlash(ref))
}

func (r *Resolver) aliasBase(ref string) (string, bool) {
	for _, a := range r.aliases {
		if !strings.HasPrefix(ref, a.prefix) {
			continue
		}
		rest := strings.TrimPrefix(ref, a.prefix)
		// "@utils" must not capture "@utilsX"
		if !strings.HasSuffix(a.prefix, "/") && rest != "" && !strings.HasPrefix(rest, "/") {
			continue
		}
		return filepath.Join(a.target, filepath.FromSlash(rest)), true
	}
	return "", false
}

func (r *Resolver) probe(base string, exts []string) (string, bool) {
	if ext := strings.ToLower(filepath.Ext(base)); ext != "" && recognized(ext, exts) {
		if r.Exists(base) {
			return base, true
		}
	}
	for _, ext := range exts {
		if candidate := base + ext; r.Exists(candidate) {
			return candidate, true
		}
	}
	for _, ext := range exts {
		if candidate := filepath.Join(base, "index"+ext); r.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func recognized(ext string, exts []string) bool {
	for _, candidate := range exts {
		if strings.EqualFold(ext, candidate) {
			return true
		}
	}
	return false
}

// cleanRef trims whitespace, query strings and fragments.
func cleanRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if idx := strings.IndexAny(ref, "?#"); idx >= 0 {
		ref = ref[:idx]
	}
	return ref
}
