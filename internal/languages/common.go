package languages

import (
	"strings"

	"github.com/chess99/mp-lens-sub000/internal/fileutil"
	"github.com/chess99/mp-lens-sub000/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// walk visits node and all of its descendants depth-first. Returning false
// from visit skips the children of that node.
func walk(node *sitter.Node, visit func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visit)
	}
}

func hasAnonymousChild(node *sitter.Node, typ string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if !child.IsNamed() && child.Type() == typ {
			return true
		}
	}
	return false
}

func firstNamedChildOfType(node *sitter.Node, types ...string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		for _, typ := range types {
			if child.Type() == typ {
				return child
			}
		}
	}
	return nil
}

// unquote strips one pair of matching quotes or backticks.
func unquote(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

func line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

// appendRef records ref unless it is external or templated.
func appendRef(refs []parser.Reference, raw string, kind parser.ReferenceKind, node *sitter.Node) []parser.Reference {
	raw = strings.TrimSpace(raw)
	if fileutil.IsExternalRef(raw) {
		return refs
	}
	return append(refs, parser.Reference{Path: raw, Kind: kind, Line: line(node)})
}
