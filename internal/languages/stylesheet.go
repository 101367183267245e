package languages

import (
	"context"
	"regexp"
	"strings"

	"github.com/chess99/mp-lens-sub000/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
)

// StylesheetExtractor finds @import, @use and @forward targets and url(...)
// resources in WXSS and the CSS dialects mini-programs compile from.
type StylesheetExtractor struct {
	lang *sitter.Language
}

// NewStylesheetExtractor creates a new stylesheet extractor
func NewStylesheetExtractor() *StylesheetExtractor {
	return &StylesheetExtractor{lang: css.GetLanguage()}
}

func (s *StylesheetExtractor) Format() string {
	return "stylesheet"
}

func (s *StylesheetExtractor) Extensions() []string {
	return []string{".wxss", ".css", ".less", ".scss"}
}

func (s *StylesheetExtractor) Extract(filename string, content []byte) (*parser.FileReferences, error) {
	root, err := sitter.ParseCtx(context.Background(), content, s.lang)
	if err != nil {
		return nil, err
	}

	result := &parser.FileReferences{
		Path:       filename,
		References: make([]parser.Reference, 0),
	}
	walk(root, func(node *sitter.Node) bool {
		switch node.Type() {
		case "comment", "js_comment":
			return false
		case "import_statement":
			result.References = s.extractImport(node, content, result.References)
			return false
		case "call_expression":
			if target, ok := urlArgument(node, content); ok {
				result.References = appendRef(result.References, target, parser.RefResource, node)
			}
			return false
		case "at_keyword":
			if target, ok := moduleRuleTarget(node, content); ok {
				result.References = appendRef(result.References, target, parser.RefStyle, node)
			}
		}
		return true
	})
	return result, nil
}

func (s *StylesheetExtractor) extractImport(node *sitter.Node, content []byte, refs []parser.Reference) []parser.Reference {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "string_value":
			refs = appendRef(refs, unquote(child.Content(content)), parser.RefStyle, node)
		case "call_expression":
			if target, ok := urlArgument(child, content); ok {
				refs = appendRef(refs, target, parser.RefStyle, node)
			}
		}
	}
	return refs
}

// sassModuleRules load another stylesheet the way @import does. The css
// grammar has no rule for them, so the target is read from the source text.
var sassModuleRules = map[string]bool{"@use": true, "@forward": true}

var quotedTarget = regexp.MustCompile(`^\s*(?:"([^"]*)"|'([^']*)')`)

// moduleRuleTarget returns the quoted target following an @use or @forward
// keyword. Built-in modules such as "sass:math" are skipped.
func moduleRuleTarget(keyword *sitter.Node, content []byte) (string, bool) {
	if !sassModuleRules[strings.ToLower(keyword.Content(content))] {
		return "", false
	}
	match := quotedTarget.FindSubmatch(content[keyword.EndByte():])
	if match == nil {
		return "", false
	}
	target := string(match[1])
	if target == "" {
		target = string(match[2])
	}
	if target == "" || strings.HasPrefix(target, "sass:") {
		return "", false
	}
	return target, true
}

// urlArgument returns the target of a url(...) call.
func urlArgument(node *sitter.Node, content []byte) (string, bool) {
	name := firstNamedChildOfType(node, "function_name")
	if name == nil || !strings.EqualFold(name.Content(content), "url") {
		return "", false
	}
	args := firstNamedChildOfType(node, "arguments")
	if args == nil {
		return "", false
	}
	raw := strings.TrimSpace(args.Content(content))
	raw = strings.TrimPrefix(raw, "(")
	raw = strings.TrimSuffix(raw, ")")
	return unquote(raw), true
}
