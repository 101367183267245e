package languages

import "github.com/chess99/mp-lens-sub000/internal/parser"

// NewDefaultRegistry creates a registry with every supported extractor
func NewDefaultRegistry() *parser.Registry {
	r := parser.NewRegistry()

	r.Register(NewScriptExtractor())
	r.Register(NewMarkupExtractor())
	r.Register(NewStylesheetExtractor())

	return r
}
