package languages

import (
	"context"
	"strings"

	"github.com/chess99/mp-lens-sub000/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"
)

// markupSources maps tag name -> attribute -> reference kind.
var markupSources = map[string]map[string]parser.ReferenceKind{
	"import":      {"src": parser.RefTemplate},
	"include":     {"src": parser.RefTemplate},
	"wxs":         {"src": parser.RefImport},
	"image":       {"src": parser.RefResource},
	"cover-image": {"src": parser.RefResource},
}

// MarkupExtractor finds template imports, includes, script modules and
// image sources in WXML files.
type MarkupExtractor struct {
	lang *sitter.Language
}

// NewMarkupExtractor creates a new markup extractor
func NewMarkupExtractor() *MarkupExtractor {
	return &MarkupExtractor{lang: html.GetLanguage()}
}

func (m *MarkupExtractor) Format() string {
	return "markup"
}

func (m *MarkupExtractor) Extensions() []string {
	return []string{".wxml"}
}

func (m *MarkupExtractor) Extract(filename string, content []byte) (*parser.FileReferences, error) {
	root, err := sitter.ParseCtx(context.Background(), content, m.lang)
	if err != nil {
		return nil, err
	}

	result := &parser.FileReferences{
		Path:       filename,
		References: make([]parser.Reference, 0),
	}
	walk(root, func(node *sitter.Node) bool {
		switch node.Type() {
		case "comment":
			return false
		case "start_tag", "self_closing_tag":
			result.References = m.extractTag(node, content, result.References)
			return false
		}
		return true
	})
	return result, nil
}

func (m *MarkupExtractor) extractTag(node *sitter.Node, content []byte, refs []parser.Reference) []parser.Reference {
	nameNode := firstNamedChildOfType(node, "tag_name")
	if nameNode == nil {
		return refs
	}
	attrs, ok := markupSources[strings.ToLower(nameNode.Content(content))]
	if !ok {
		return refs
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		attr := node.NamedChild(i)
		if attr.Type() != "attribute" {
			continue
		}
		name := firstNamedChildOfType(attr, "attribute_name")
		if name == nil {
			continue
		}
		kind, ok := attrs[strings.ToLower(name.Content(content))]
		if !ok {
			continue
		}
		if value, ok := attributeValue(attr, content); ok {
			refs = appendRef(refs, value, kind, attr)
		}
	}
	return refs
}

func attributeValue(attr *sitter.Node, content []byte) (string, bool) {
	if quoted := firstNamedChildOfType(attr, "quoted_attribute_value"); quoted != nil {
		if value := firstNamedChildOfType(quoted, "attribute_value"); value != nil {
			return value.Content(content), true
		}
		return unquote(quoted.Content(content)), true
	}
	if value := firstNamedChildOfType(attr, "attribute_value"); value != nil {
		return value.Content(content), true
	}
	return "", false
}
