package languages

import (
	"context"
	"strings"

	"github.com/chess99/mp-lens-sub000/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ScriptExtractor finds module references in JavaScript, TypeScript and
// WXS files: static imports, re-exports, require("literal") and
// import("literal"). Type-only imports and exports are not references.
type ScriptExtractor struct {
	js *sitter.Language
	ts *sitter.Language
}

// NewScriptExtractor creates a new script extractor
func NewScriptExtractor() *ScriptExtractor {
	return &ScriptExtractor{
		js: javascript.GetLanguage(),
		ts: typescript.GetLanguage(),
	}
}

func (s *ScriptExtractor) Format() string {
	return "script"
}

func (s *ScriptExtractor) Extensions() []string {
	return []string{".js", ".ts", ".wxs", ".mjs", ".cjs"}
}

func (s *ScriptExtractor) Extract(filename string, content []byte) (*parser.FileReferences, error) {
	isTS := strings.HasSuffix(strings.ToLower(filename), ".ts")
	lang := s.js
	if isTS {
		lang = s.ts
	}

	root, err := sitter.ParseCtx(context.Background(), content, lang)
	if err != nil {
		return nil, err
	}

	result := &parser.FileReferences{
		Path:       filename,
		References: make([]parser.Reference, 0),
	}
	walk(root, func(node *sitter.Node) bool {
		switch node.Type() {
		case "import_statement":
			result.References = s.extractImport(node, content, result.References)
			return false
		case "export_statement":
			if source := node.ChildByFieldName("source"); source != nil && !hasAnonymousChild(node, "type") && !onlyTypeSpecifiers(firstNamedChildOfType(node, "export_clause"), "export_specifier") {
				result.References = appendRef(result.References, unquote(source.Content(content)), parser.RefImport, node)
			}
		case "call_expression":
			result.References = s.extractCall(node, content, result.References)
		}
		return true
	})

	if isTS {
		result.AmbientOnly = strings.HasSuffix(strings.ToLower(filename), ".d.ts") || ambientOnly(root)
	}
	return result, nil
}

func (s *ScriptExtractor) extractImport(node *sitter.Node, content []byte, refs []parser.Reference) []parser.Reference {
	// import type { A } from "./a"
	if hasAnonymousChild(node, "type") || hasAnonymousChild(node, "typeof") {
		return refs
	}
	// import { type A, type B } from "./a"
	if clause := firstNamedChildOfType(node, "import_clause"); clause != nil && clause.NamedChildCount() == 1 &&
		onlyTypeSpecifiers(firstNamedChildOfType(clause, "named_imports"), "import_specifier") {
		return refs
	}
	if source := node.ChildByFieldName("source"); source != nil {
		return appendRef(refs, unquote(source.Content(content)), parser.RefImport, node)
	}
	// import x = require("./x")
	if clause := firstNamedChildOfType(node, "import_require_clause"); clause != nil {
		if str := firstNamedChildOfType(clause, "string"); str != nil {
			return appendRef(refs, unquote(str.Content(content)), parser.RefImport, node)
		}
	}
	return refs
}

func (s *ScriptExtractor) extractCall(node *sitter.Node, content []byte, refs []parser.Reference) []parser.Reference {
	fn := node.ChildByFieldName("function")
	args := node.ChildByFieldName("arguments")
	if fn == nil || args == nil {
		return refs
	}

	isImport := fn.Type() == "import"
	isRequire := fn.Type() == "identifier" && fn.Content(content) == "require"
	if !isImport && !isRequire {
		return refs
	}

	// only a single literal argument is resolvable
	if args.NamedChildCount() != 1 {
		return refs
	}
	arg := args.NamedChild(0)
	switch arg.Type() {
	case "string":
		return appendRef(refs, unquote(arg.Content(content)), parser.RefImport, node)
	case "template_string":
		if firstNamedChildOfType(arg, "template_substitution") != nil {
			return refs
		}
		return appendRef(refs, unquote(arg.Content(content)), parser.RefImport, node)
	}
	return refs
}

// onlyTypeSpecifiers reports whether list holds at least one specifier and
// every one of them is marked "type".
func onlyTypeSpecifiers(list *sitter.Node, specifier string) bool {
	if list == nil || list.NamedChildCount() == 0 {
		return false
	}
	for i := 0; i < int(list.NamedChildCount()); i++ {
		spec := list.NamedChild(i)
		if spec.Type() != specifier {
			continue
		}
		if !hasAnonymousChild(spec, "type") && !hasAnonymousChild(spec, "typeof") {
			return false
		}
	}
	return true
}

var ambientStatements = map[string]bool{
	"ambient_declaration":    true,
	"interface_declaration":  true,
	"type_alias_declaration": true,
}

// ambientOnly reports whether every top-level statement declares a global,
// so the file is visible without being imported. In a script file that is any
// declare, interface or type alias statement. Once an import or export makes
// the file a module, only "declare global" and "declare module" blocks are
// global.
func ambientOnly(root *sitter.Node) bool {
	module := false
	for i := 0; i < int(root.NamedChildCount()); i++ {
		switch root.NamedChild(i).Type() {
		case "import_statement", "export_statement":
			module = true
		}
	}

	declarations := 0
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		switch stmt.Type() {
		case "comment":
			continue
		case "import_statement":
			if !hasAnonymousChild(stmt, "type") {
				return false
			}
		case "export_statement":
			if stmt.ChildByFieldName("source") != nil || !emptyExportClause(stmt) {
				return false
			}
		default:
			if !ambientStatements[stmt.Type()] {
				return false
			}
			if module && !globalAugmentation(stmt) {
				return false
			}
			declarations++
		}
	}
	return declarations > 0
}

func globalAugmentation(stmt *sitter.Node) bool {
	if stmt.Type() != "ambient_declaration" {
		return false
	}
	return hasAnonymousChild(stmt, "global") || firstNamedChildOfType(stmt, "module") != nil
}

func emptyExportClause(stmt *sitter.Node) bool {
	clause := firstNamedChildOfType(stmt, "export_clause")
	return clause != nil && clause.NamedChildCount() == 0
}
