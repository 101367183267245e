package parser

import (
	"path/filepath"
	"sort"
	"strings"
)

// Extractor pulls raw outgoing references out of one file format.
// Implementations must be safe for concurrent use.
type Extractor interface {
	// Format returns the format name (e.g., "markup", "script")
	Format() string

	// Extensions returns file extensions this extractor handles
	Extensions() []string

	// Extract parses content and returns its references
	Extract(filename string, content []byte) (*FileReferences, error)
}

// Registry holds all registered extractors
type Registry struct {
	extractors  map[string]Extractor // format name -> extractor
	extToFormat map[string]string    // extension -> format name
}

// NewRegistry creates a new extractor registry
func NewRegistry() *Registry {
	return &Registry{
		extractors:  make(map[string]Extractor),
		extToFormat: make(map[string]string),
	}
}

// Register adds an extractor to the registry
func (r *Registry) Register(e Extractor) {
	format := e.Format()
	r.extractors[format] = e
	for _, ext := range e.Extensions() {
		r.extToFormat[ext] = format
	}
}

// ExtractorForFile returns the extractor for a file, if any
func (r *Registry) ExtractorForFile(filename string) (Extractor, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	format, ok := r.extToFormat[ext]
	if !ok {
		return nil, false
	}
	e, ok := r.extractors[format]
	return e, ok
}

// SupportedExtensions returns all supported file extensions
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.extToFormat))
	for ext := range r.extToFormat {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ExtractContent runs the matching extractor over content. Files without an
// extractor yield nil, nil.
func (r *Registry) ExtractContent(path string, content []byte) (*FileReferences, error) {
	e, ok := r.ExtractorForFile(path)
	if !ok {
		return nil, nil
	}

	refs, err := e.Extract(path, content)
	if err != nil {
		return nil, err
	}
	refs.Path = path
	refs.Format = e.Format()
	refs.References = normalizeReferences(refs.References)
	return refs, nil
}

func normalizeReferences(values []Reference) []Reference {
	if len(values) == 0 {
		return nil
	}

	type key struct {
		path string
		kind ReferenceKind
	}
	seen := make(map[key]bool, len(values))
	out := make([]Reference, 0, len(values))
	for _, value := range values {
		value.Path = strings.TrimSpace(value.Path)
		k := key{value.Path, value.Kind}
		if value.Path == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, value)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}
